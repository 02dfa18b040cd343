package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// DocumentKey is the single key under which the whole document is stored
const DocumentKey = "resume-data"

// Adapter reads, writes and clears the canonical document in a Store
type Adapter struct {
	store   Store
	onSaved func()
	verbose bool
}

// AdapterOption configures an Adapter
type AdapterOption func(*Adapter)

// WithVerbose enables [STORE] logging
func WithVerbose(verbose bool) AdapterOption {
	return func(a *Adapter) {
		a.verbose = verbose
	}
}

// NewAdapter creates a persistence adapter over store
func NewAdapter(store Store, opts ...AdapterOption) *Adapter {
	a := &Adapter{store: store}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// OnSaved registers the hook fired after every successful write.
// A later call replaces the previous hook.
func (a *Adapter) OnSaved(fn func()) {
	a.onSaved = fn
}

// Load returns the persisted document, or nil when nothing has been stored yet
func (a *Adapter) Load(ctx context.Context) (*types.ResumeDocument, error) {
	data, found, err := a.store.Get(ctx, DocumentKey)
	if err != nil {
		return nil, &ReadError{Key: DocumentKey, Message: "store read failed", Cause: err}
	}
	if !found || len(data) == 0 {
		return nil, nil
	}

	violations, err := ValidateDocumentJSON(data)
	if err != nil {
		return nil, &ReadError{Key: DocumentKey, Message: "stored document is not valid JSON", Cause: err}
	}
	if len(violations) > 0 {
		details := make([]string, len(violations))
		for i, v := range violations {
			details[i] = fmt.Sprintf("%s: %s", v.Field, v.Message)
		}
		return nil, &ReadError{Key: DocumentKey, Message: "stored document does not match schema: " + strings.Join(details, "; ")}
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ReadError{Key: DocumentKey, Message: "failed to decode stored document", Cause: err}
	}
	doc.Normalize()

	if a.verbose {
		log.Printf("[STORE] Loaded document (%d bytes)", len(data))
	}
	return &doc, nil
}

// Save writes the document and fires the saved hook on success
func (a *Adapter) Save(ctx context.Context, doc *types.ResumeDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return &WriteError{Key: DocumentKey, Message: "failed to encode document", Cause: err}
	}
	if err := a.store.Set(ctx, DocumentKey, data); err != nil {
		return &WriteError{Key: DocumentKey, Message: "store write failed", Cause: err}
	}

	if a.verbose {
		log.Printf("[STORE] Saved document (%d bytes)", len(data))
	}
	if a.onSaved != nil {
		a.onSaved()
	}
	return nil
}

// Clear erases the persisted document
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.Remove(ctx, DocumentKey); err != nil {
		return &WriteError{Key: DocumentKey, Message: "failed to clear stored document", Cause: err}
	}
	if a.verbose {
		log.Printf("[STORE] Cleared document")
	}
	return nil
}
