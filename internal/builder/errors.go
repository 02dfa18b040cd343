package builder

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// SectionError reports an UpdateSection call with an unknown section or a
// value of the wrong type
type SectionError struct {
	Section types.Section
	Message string
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("section %q: %s", e.Section, e.Message)
}
