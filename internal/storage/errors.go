// Package storage provides the local key-value stores and the persistence
// adapter that reads and writes the canonical resume document. Every backend
// is local to the user: the Postgres store must point at a database on the
// same machine and never at a shared server.
package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned when a store key is empty or cannot be mapped to storage
var ErrInvalidKey = errors.New("invalid store key")

// ReadError represents a failure to read or decode the persisted document
type ReadError struct {
	Key     string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("read %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("read %s: %s", e.Key, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}

// WriteError represents a failure to encode or write the document
type WriteError struct {
	Key     string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("write %s: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("write %s: %s", e.Key, e.Message)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}
