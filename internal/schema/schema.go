// Package schema owns the versioned JSON Schema artifacts that define the
// coach response contract. The documents are data, not code: they are
// embedded at build time, compiled once, and reproduced verbatim inside
// the prompt so the model sees the exact same contract the validator
// enforces. Adding optional fields to a schema is a backward-compatible
// change; adding required fields is not.
package schema

import (
	_ "embed"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed analysis_schema.json
var analysisJSON []byte

//go:embed response_schema.json
var responseJSON []byte

var (
	analysisSchema = jsonschema.MustCompileString("analysis_schema.json", string(analysisJSON))
	responseSchema = jsonschema.MustCompileString("response_schema.json", string(responseJSON))
)

// Analysis returns the compiled schema for the first-stage analysis payload.
func Analysis() *jsonschema.Schema {
	return analysisSchema
}

// Response returns the compiled schema for the final coach response payload.
func Response() *jsonschema.Schema {
	return responseSchema
}

// AnalysisJSON returns the raw analysis schema document for prompt embedding.
func AnalysisJSON() json.RawMessage {
	return json.RawMessage(analysisJSON)
}

// ResponseJSON returns the raw response schema document for prompt embedding.
func ResponseJSON() json.RawMessage {
	return json.RawMessage(responseJSON)
}

// Validate checks a decoded JSON payload against a compiled schema.
// The payload must consist of plain decoded-JSON types (map[string]any,
// []any, string, float64, bool, nil).
func Validate(payload map[string]any, s *jsonschema.Schema) error {
	return s.Validate(payload)
}
