package editor

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Field names one editable personal info field
type Field string

// Personal info fields in header order
const (
	FieldName     Field = "name"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
	FieldGitHub   Field = "github"
	FieldLinkedIn Field = "linkedin"
)

// Fields returns the editable fields in header order
func Fields() []Field {
	return []Field{FieldName, FieldEmail, FieldPhone, FieldGitHub, FieldLinkedIn}
}

// ParseField matches a field name case-insensitively
func ParseField(s string) (Field, error) {
	for _, f := range Fields() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown personal info field %q", s)
}

// PersonalInfo edits the singleton personal info record
type PersonalInfo struct {
	info   types.PersonalInfo
	update func(types.PersonalInfo)
}

// NewPersonalInfo creates an editor over info that publishes changes through update
func NewPersonalInfo(info types.PersonalInfo, update func(types.PersonalInfo)) *PersonalInfo {
	return &PersonalInfo{info: info, update: update}
}

// Info returns the current record
func (e *PersonalInfo) Info() types.PersonalInfo {
	return e.info
}

// Sync replaces the record without publishing it
func (e *PersonalInfo) Sync(info types.PersonalInfo) {
	e.info = info
}

// Set overwrites the whole record
func (e *PersonalInfo) Set(info types.PersonalInfo) {
	e.info = info
	if e.update != nil {
		e.update(info)
	}
}

// Update changes one field and publishes the whole record
func (e *PersonalInfo) Update(field Field, value string) error {
	next := e.info
	switch field {
	case FieldName:
		next.Name = value
	case FieldEmail:
		next.Email = value
	case FieldPhone:
		next.Phone = value
	case FieldGitHub:
		next.GitHub = value
	case FieldLinkedIn:
		next.LinkedIn = value
	default:
		return fmt.Errorf("unknown personal info field %q", field)
	}
	e.Set(next)
	return nil
}
