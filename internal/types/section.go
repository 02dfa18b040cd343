package types

import "fmt"

// Section names one top-level part of the document
type Section string

// Document sections. Values match the JSON field names of ResumeDocument.
const (
	SectionPersonalInfo   Section = "personalInfo"
	SectionAchievements   Section = "achievements"
	SectionWorkExperience Section = "workExperience"
	SectionEducation      Section = "education"
	SectionSkills         Section = "skills"
)

// AllSections returns every section in editing order
func AllSections() []Section {
	return []Section{
		SectionPersonalInfo,
		SectionAchievements,
		SectionWorkExperience,
		SectionEducation,
		SectionSkills,
	}
}

// Title returns the heading used for the section in rendered output
func (s Section) Title() string {
	switch s {
	case SectionPersonalInfo:
		return "Personal Info"
	case SectionAchievements:
		return "Achievements"
	case SectionWorkExperience:
		return "Work Experience"
	case SectionEducation:
		return "Education"
	case SectionSkills:
		return "Skills"
	default:
		return string(s)
	}
}

// ParseSection accepts the JSON name of a section as well as a few CLI aliases
func ParseSection(s string) (Section, error) {
	switch s {
	case "personalInfo", "personal", "personal-info":
		return SectionPersonalInfo, nil
	case "achievements", "achievement":
		return SectionAchievements, nil
	case "workExperience", "experience", "work-experience":
		return SectionWorkExperience, nil
	case "education":
		return SectionEducation, nil
	case "skills", "skill":
		return SectionSkills, nil
	default:
		return "", fmt.Errorf("unknown section %q", s)
	}
}
