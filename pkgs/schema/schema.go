// Package schema validates emitted trace documents against the JSON Schema
// that downstream consumers code against.
package schema

import (
	"encoding/json"

	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/modelcheck/tlctrace/pkgs/errors"
)

//go:embed trace_schema.json
var traceSchema string

var compiled = jsonschema.MustCompileString("tlctrace://trace.schema.json", traceSchema)

// Validate checks a serialized trace document against the schema. A failure
// means the serializer and the published contract have drifted apart.
func Validate(doc []byte) error {
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return errors.Wrap(errors.ErrDocumentInvalid, "document is not valid JSON", err)
	}
	if err := compiled.Validate(v); err != nil {
		return errors.Wrap(errors.ErrDocumentInvalid, "document does not match trace schema", err)
	}
	return nil
}
