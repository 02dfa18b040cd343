// Package types provides type definitions for the resume document and the
// assistant conversation used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// PresentEndDate is the end date stored for a position the candidate still holds
const PresentEndDate = "Present"

// PersonalInfo is the singleton contact record shown in the resume header
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
}

// Achievement represents a single notable accomplishment
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
}

// WorkExperience represents one position held by the candidate
type WorkExperience struct {
	ID               string   `json:"id"`
	Title            string   `json:"title" validate:"notblank"`
	Company          string   `json:"company" validate:"notblank"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"startDate" validate:"notblank"`
	EndDate          string   `json:"endDate"`
	Current          bool     `json:"current,omitempty"`
	Description      string   `json:"description"`
	Responsibilities []string `json:"responsibilities"`
}

// DisplayEndDate returns the end date as it should be shown to the reader
func (w WorkExperience) DisplayEndDate() string {
	if w.Current {
		return PresentEndDate
	}
	return w.EndDate
}

// Education represents a degree or course of study
type Education struct {
	ID          string `json:"id"`
	Degree      string `json:"degree" validate:"notblank"`
	Institution string `json:"institution" validate:"notblank"`
	Location    string `json:"location,omitempty"`
	StartDate   string `json:"startDate" validate:"notblank"`
	EndDate     string `json:"endDate" validate:"notblank"`
	Description string `json:"description,omitempty"`
}

// SkillLevel is an optional proficiency rating
type SkillLevel string

// Proficiency levels. The zero value means the level is unset.
const (
	LevelUnset        SkillLevel = ""
	LevelBeginner     SkillLevel = "Beginner"
	LevelIntermediate SkillLevel = "Intermediate"
	LevelAdvanced     SkillLevel = "Advanced"
	LevelExpert       SkillLevel = "Expert"
)

// SkillLevels returns the selectable levels in ascending order
func SkillLevels() []SkillLevel {
	return []SkillLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}
}

// ParseSkillLevel matches a level case-insensitively. Blank input yields LevelUnset.
func ParseSkillLevel(s string) (SkillLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LevelUnset, nil
	}
	for _, level := range SkillLevels() {
		if strings.EqualFold(s, string(level)) {
			return level, nil
		}
	}
	return LevelUnset, fmt.Errorf("unknown skill level %q", s)
}

// Skill represents a named skill with an optional level
type Skill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name" validate:"notblank"`
	Level SkillLevel `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

// ResumeDocument is the canonical aggregate edited by the section editors
type ResumeDocument struct {
	PersonalInfo   PersonalInfo     `json:"personalInfo"`
	Achievements   []Achievement    `json:"achievements"`
	WorkExperience []WorkExperience `json:"workExperience"`
	Education      []Education      `json:"education"`
	Skills         []Skill          `json:"skills"`
}

// NewDocument returns a fully defaulted, empty document
func NewDocument() *ResumeDocument {
	return &ResumeDocument{
		Achievements:   []Achievement{},
		WorkExperience: []WorkExperience{},
		Education:      []Education{},
		Skills:         []Skill{},
	}
}

// Normalize replaces nil collections with empty ones
func (d *ResumeDocument) Normalize() {
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	for i := range d.WorkExperience {
		if d.WorkExperience[i].Responsibilities == nil {
			d.WorkExperience[i].Responsibilities = []string{}
		}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
}

// Clone returns a deep copy of the document
func (d *ResumeDocument) Clone() *ResumeDocument {
	out := &ResumeDocument{
		PersonalInfo:   d.PersonalInfo,
		Achievements:   append([]Achievement{}, d.Achievements...),
		WorkExperience: CloneWorkExperience(d.WorkExperience),
		Education:      append([]Education{}, d.Education...),
		Skills:         append([]Skill{}, d.Skills...),
	}
	return out
}

// CloneWorkExperience copies a work experience slice including each responsibilities list
func CloneWorkExperience(in []WorkExperience) []WorkExperience {
	out := make([]WorkExperience, len(in))
	for i, w := range in {
		w.Responsibilities = append([]string{}, w.Responsibilities...)
		out[i] = w
	}
	return out
}

// IsEmpty reports whether nothing has been entered yet
func (d *ResumeDocument) IsEmpty() bool {
	return d.PersonalInfo == (PersonalInfo{}) &&
		len(d.Achievements) == 0 &&
		len(d.WorkExperience) == 0 &&
		len(d.Education) == 0 &&
		len(d.Skills) == 0
}
