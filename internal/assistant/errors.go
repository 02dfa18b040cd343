// Package assistant implements the resume assistant chat session, its
// dictation sub-session and the clients for the chat and transcription
// services.
package assistant

import (
	"errors"
	"fmt"
)

// Session rejections. Neither changes the session state.
var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("a request is already in flight")
)

// ErrDictationUnsupported is returned by ToggleDictation when no recognizer is available
var ErrDictationUnsupported = errors.New("speech recognition is not supported in this environment")

// ErrRecognizerBusy is returned by Recognizer.Start while a capture is running
var ErrRecognizerBusy = errors.New("recognizer is already capturing")

// ServiceError represents a failed or malformed reply from the chat or
// transcription service
type ServiceError struct {
	Service    string
	StatusCode int
	Message    string
	Cause      error
}

func (e *ServiceError) Error() string {
	msg := fmt.Sprintf("%s service error", e.Service)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}
