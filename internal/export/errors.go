// Package export turns the resume document into a one-page A4 PDF by
// rasterizing the rendered export tree and packaging the snapshot.
package export

import (
	"errors"
	"fmt"
)

// ErrExportInProgress is returned when Export is called while another export runs
var ErrExportInProgress = errors.New("an export is already in progress")

// Stage names the step of the export pipeline that failed
type Stage string

// Pipeline stages in execution order
const (
	StageRender    Stage = "render"
	StageRasterize Stage = "rasterize"
	StagePackage   Stage = "package"
	StageDeliver   Stage = "deliver"
)

// Error reports a failed export. Temporary resources are already released
// when it is returned.
type Error struct {
	Stage Stage
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export failed at %s: %v", e.Stage, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
