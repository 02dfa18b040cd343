package storage

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed document.schema.json
var documentSchemaJSON []byte

var (
	documentSchema     *gojsonschema.Schema
	documentSchemaErr  error
	documentSchemaOnce sync.Once
)

// FieldError is a single schema violation at a field path
type FieldError struct {
	Field   string
	Message string
}

func loadDocumentSchema() (*gojsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		documentSchema, documentSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(documentSchemaJSON))
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocumentJSON checks raw document JSON against the embedded schema.
// It returns the violations found; an error means the check itself could not run.
func ValidateDocumentJSON(data []byte) ([]FieldError, error) {
	schema, err := loadDocumentSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to load document schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]FieldError, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, FieldError{Field: e.Field(), Message: e.Description()})
	}
	return violations, nil
}
