package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/builder"
	"github.com/jonathan/resume-builder/internal/editor"
	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/storage"
)

// Messages returned verbatim by the assistant endpoints
const (
	MsgMessagesRequired   = "Invalid request: 'messages' array is required"
	MsgIncompleteMessage  = "Each message must have a 'role' and 'content'"
	MsgNoAudio            = "No audio file provided"
	MsgTranscribeFailed   = "Failed to transcribe audio"
	MsgResetNotConfirmed  = "Reset requires confirm=true"
	MsgServiceUnavailable = "%s is not configured"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		editorErr     *editor.ValidationError
		sectionErr    *builder.SectionError
		exportErr     *export.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr), errors.As(err, &editorErr), errors.As(err, &sectionErr):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, export.ErrExportInProgress):
		return http.StatusConflict
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
