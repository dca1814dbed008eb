package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modelcheck/tlctrace/pkgs/errors"
	"github.com/modelcheck/tlctrace/pkgs/schema"
	"github.com/modelcheck/tlctrace/pkgs/trace"
	"github.com/modelcheck/tlctrace/pkgs/value"
)

func TestValidateEmittedDocument(t *testing.T) {
	tr := &trace.Trace{
		SpecName:          "Inventory",
		InvariantViolated: "NoNegativeLots",
		States: []trace.State{
			{
				Index:  1,
				Action: "Initial",
				Variables: []trace.Variable{
					{Name: "lots", Val: value.Sequence(value.Record(
						value.Field{Name: "units", Val: value.Int(5)},
					))},
					{Name: "open", Val: value.Bool(true)},
					{Name: "owner", Val: value.Null()},
					{Name: "prices", Val: value.Function(
						value.Pair{Key: value.Int(1), Val: value.Str("a")},
					)},
					{Name: "pending", Val: value.Raw("Append(q, 1)")},
				},
			},
		},
	}

	doc, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.NoError(t, schema.Validate(doc))
}

func TestValidateRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"spec_name":`},
		{"wrong spec_name type", `{"spec_name":1,"invariant_violated":null,"property_violated":null,"states":[]}`},
		{"missing states", `{"spec_name":"M","invariant_violated":null,"property_violated":null}`},
		{"bad state_num", `{"spec_name":"M","invariant_violated":null,"property_violated":null,"states":[{"state_num":0,"action":null,"variables":{}}]}`},
		{"unknown collection type", `{"spec_name":"M","invariant_violated":null,"property_violated":null,"states":[{"state_num":1,"action":null,"variables":{"x":{"type":"bag","elements":[]}}}]}`},
		{"extra top-level key", `{"spec_name":"M","invariant_violated":null,"property_violated":null,"states":[],"extra":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.Validate([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.IsErrorType(err, errors.ErrDocumentInvalid))
		})
	}
}
