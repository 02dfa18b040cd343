package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// DefaultName is shown in the header when no name has been entered
const DefaultName = "Your Name"

// ContactKind identifies one header contact field
type ContactKind string

// Contact fields in display order
const (
	ContactEmail    ContactKind = "email"
	ContactPhone    ContactKind = "phone"
	ContactGitHub   ContactKind = "github"
	ContactLinkedIn ContactKind = "linkedin"
)

// Contact is one non-empty contact field of the header
type Contact struct {
	Kind  ContactKind
	Value string
}

// Label returns the prefix shown before the value
func (c Contact) Label() string {
	switch c.Kind {
	case ContactEmail:
		return "📧"
	case ContactPhone:
		return "📱"
	case ContactGitHub:
		return "GitHub:"
	case ContactLinkedIn:
		return "LinkedIn:"
	default:
		return ""
	}
}

// String renders the contact as it appears in the header
func (c Contact) String() string {
	return c.Label() + " " + c.Value
}

// Entry is one rendered item of a section
type Entry struct {
	Heading     string
	Subheading  string
	Dates       string
	Description string
	Bullets     []string
}

// Block is one present section with its entries
type Block struct {
	Section types.Section
	Title   string
	Entries []Entry
}

// Layout is the shared projection both renderers draw from
type Layout struct {
	Name     string
	Contacts []Contact
	Blocks   []Block
}

// SectionTitles returns the headings of the present sections in order
func (l Layout) SectionTitles() []string {
	titles := make([]string, len(l.Blocks))
	for i, b := range l.Blocks {
		titles[i] = b.Title
	}
	return titles
}

// Project computes the layout of doc. Sections appear in the order
// Achievements, Work Experience, Education, Skills and only when non-empty.
func Project(doc *types.ResumeDocument) Layout {
	if doc == nil {
		doc = types.NewDocument()
	}

	layout := Layout{
		Name:     displayName(doc.PersonalInfo.Name),
		Contacts: contacts(doc.PersonalInfo),
	}

	if len(doc.Achievements) > 0 {
		block := Block{Section: types.SectionAchievements, Title: types.SectionAchievements.Title()}
		for _, a := range doc.Achievements {
			block.Entries = append(block.Entries, Entry{Heading: a.Title, Description: a.Description})
		}
		layout.Blocks = append(layout.Blocks, block)
	}

	if len(doc.WorkExperience) > 0 {
		block := Block{Section: types.SectionWorkExperience, Title: types.SectionWorkExperience.Title()}
		for _, w := range doc.WorkExperience {
			block.Entries = append(block.Entries, Entry{
				Heading:     w.Title,
				Subheading:  withLocation(w.Company, w.Location),
				Dates:       w.StartDate + " - " + w.DisplayEndDate(),
				Description: w.Description,
				Bullets:     append([]string(nil), w.Responsibilities...),
			})
		}
		layout.Blocks = append(layout.Blocks, block)
	}

	if len(doc.Education) > 0 {
		block := Block{Section: types.SectionEducation, Title: types.SectionEducation.Title()}
		for _, e := range doc.Education {
			block.Entries = append(block.Entries, Entry{
				Heading:     e.Degree,
				Subheading:  withLocation(e.Institution, e.Location),
				Dates:       e.StartDate + " - " + e.EndDate,
				Description: e.Description,
			})
		}
		layout.Blocks = append(layout.Blocks, block)
	}

	if len(doc.Skills) > 0 {
		block := Block{Section: types.SectionSkills, Title: types.SectionSkills.Title()}
		for _, s := range doc.Skills {
			block.Entries = append(block.Entries, Entry{Heading: SkillLabel(s)})
		}
		layout.Blocks = append(layout.Blocks, block)
	}

	return layout
}

// SkillLabel renders a skill name with its level in parentheses when set
func SkillLabel(s types.Skill) string {
	if s.Level == types.LevelUnset {
		return s.Name
	}
	return s.Name + " (" + string(s.Level) + ")"
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultName
	}
	return name
}

func contacts(info types.PersonalInfo) []Contact {
	fields := []Contact{
		{Kind: ContactEmail, Value: info.Email},
		{Kind: ContactPhone, Value: info.Phone},
		{Kind: ContactGitHub, Value: info.GitHub},
		{Kind: ContactLinkedIn, Value: info.LinkedIn},
	}
	out := make([]Contact, 0, len(fields))
	for _, c := range fields {
		if c.Value != "" {
			out = append(out, c)
		}
	}
	return out
}

func withLocation(place, location string) string {
	if location == "" {
		return place
	}
	return place + " • " + location
}
