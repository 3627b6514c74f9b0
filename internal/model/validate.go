package model

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks decoded documents against the resume schema file.
// The schema is compiled once at construction and is safe for concurrent
// use across render calls.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles the schema at the given path. Use an absolute
// canonical file:// path so loaders on all platforms (including Windows)
// resolve file references correctly.
func NewValidator(schemaPath string) (*Validator, error) {
	abs, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, err
	}
	loader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(abs))
	schema, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("compile resume schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateMap validates a decoded document against the schema. Violations
// come back wrapped in ErrInvalidDocument so HTTP callers can map them to
// a client error.
func (v *Validator) ValidateMap(m map[string]interface{}) error {
	res, err := v.schema.Validate(gojsonschema.NewGoLoader(m))
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	var msgs []string
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(msgs, "; "))
}
