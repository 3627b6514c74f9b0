package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// A resume document is deliberately loose: no field is guaranteed present
// and the enrichment pipeline works over the decoded map in place. The
// only hard contract is shape-level, enforced by the schema in
// templates/resume.schema.json before any enrichment runs.

// ErrInvalidDocument marks caller input that does not decode as a resume
// document at all.
var ErrInvalidDocument = errors.New("invalid resume document")

// Decode unmarshals raw JSON into a document map and validates its shape.
// It fails fast: a document that is rejected here never reaches the
// enrichment pipeline.
func Decode(raw []byte, v *Validator) (map[string]interface{}, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if v != nil {
		if err := v.ValidateMap(doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
