// Package rendering projects the resume document into the on-screen preview
// and the HTML tree that the exporter rasterizes.
package rendering

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is wrapped when a custom template path does not exist
var ErrTemplateNotFound = errors.New("template file not found")

// ErrSectionMismatch is wrapped when the export tree and the preview disagree
var ErrSectionMismatch = errors.New("export sections differ from preview")

// Op names the rendering step that failed
type Op string

const (
	OpRead    Op = "read"
	OpParse   Op = "parse"
	OpExecute Op = "execute"
	OpInspect Op = "inspect"
)

// Error reports a failed rendering step. Template is the template name or
// path, empty when the step is not tied to one.
type Error struct {
	Op       Op
	Template string
	Err      error
}

func (e *Error) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("render %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("render %s %s: %v", e.Op, e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
