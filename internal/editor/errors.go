// Package editor implements the section editors that author and mutate one
// collection (or the personal info record) of the resume document.
package editor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/types"
)

// ErrEmptyResponsibility is returned when a blank responsibility is added
var ErrEmptyResponsibility = errors.New("responsibility text is empty")

// ValidationError reports the required fields missing from a draft
type ValidationError struct {
	Section types.Section
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation error: %s: %s (%s)", e.Section, e.Message, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("validation error: %s: %s", e.Section, e.Message)
}

// editedGone reports a save in edit mode whose entity no longer exists
func editedGone(section types.Section) *ValidationError {
	return &ValidationError{Section: section, Message: "The entry being edited no longer exists; save again to add it as new"}
}

// IndexError reports a position outside a staging buffer or responsibilities list
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Len)
}

// newValidationError converts validator output into a ValidationError.
// labels maps struct field names to the labels shown to the user.
func newValidationError(section types.Section, message string, err error, labels map[string]string) *ValidationError {
	out := &ValidationError{Section: section, Message: message}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			label, ok := labels[fe.Field()]
			if !ok {
				label = fe.Field()
			}
			out.Fields = append(out.Fields, label)
		}
	}
	return out
}
