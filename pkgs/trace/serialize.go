package trace

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/modelcheck/tlctrace/pkgs/errors"
)

// MarshalJSON renders the document consumed by the downstream test
// generator. Key order and state/variable order are exactly the source
// order, so both the states array and each variables object are written by
// hand rather than through a Go map.
//
//	{
//	  "spec_name": "...",
//	  "invariant_violated": "..." | null,
//	  "property_violated": "..." | null,
//	  "states": [
//	    {"state_num": 1, "action": "..." | null, "variables": {...}},
//	    ...
//	  ]
//	}
func (t *Trace) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"spec_name":`)
	if err := writeString(&buf, t.SpecName); err != nil {
		return nil, err
	}
	buf.WriteString(`,"invariant_violated":`)
	if err := writeNullableString(&buf, t.InvariantViolated); err != nil {
		return nil, err
	}
	buf.WriteString(`,"property_violated":`)
	if err := writeNullableString(&buf, t.PropertyViolated); err != nil {
		return nil, err
	}

	buf.WriteString(`,"states":[`)
	for i, s := range t.States {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"state_num":`)
		buf.WriteString(strconv.Itoa(s.Index))
		buf.WriteString(`,"action":`)
		if err := writeNullableString(&buf, s.Action); err != nil {
			return nil, err
		}
		buf.WriteString(`,"variables":{`)
		for j, v := range s.Variables {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(&buf, v.Name); err != nil {
				return nil, err
			}
			buf.WriteByte(':')
			vb, err := v.Val.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteString("}}")
	}
	buf.WriteString("]}")

	return buf.Bytes(), nil
}

// EncodeJSON writes the indented document followed by a newline, matching
// the output format of the original converter.
func EncodeJSON(w io.Writer, t *Trace) error {
	compact, err := t.MarshalJSON()
	if err != nil {
		return errors.Wrap(errors.ErrDocumentEncode, "failed to encode trace document", err)
	}
	var indented bytes.Buffer
	if err := json.Indent(&indented, compact, "", "  "); err != nil {
		return errors.Wrap(errors.ErrDocumentEncode, "failed to indent trace document", err)
	}
	indented.WriteByte('\n')
	if _, err := w.Write(indented.Bytes()); err != nil {
		return errors.NewOutputError("failed writing trace document", err)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// writeNullableString treats the empty string as "not announced" and encodes
// it as null.
func writeNullableString(buf *bytes.Buffer, s string) error {
	if s == "" {
		buf.WriteString("null")
		return nil
	}
	return writeString(buf, s)
}
