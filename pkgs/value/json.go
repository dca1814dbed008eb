package value

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON encodes a Value in the document form consumed by the trace
// tooling downstream:
//
//	Bool     -> true/false
//	Int      -> number
//	Str      -> "..."
//	Null     -> null
//	Set      -> {"type":"set","elements":[...]}
//	Sequence -> {"type":"sequence","elements":[...]}
//	Record   -> {"type":"record","fields":{...}}   (field order preserved)
//	Function -> {"type":"function","mapping":[[k,v],...]}
//	Raw      -> "..." (the original text, same as the legacy converter)
//
// Record fields keep their textual order, which rules out a Go map; the
// object is written by hand. Function mappings are pair lists because keys
// are not restricted to strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.Int, 10))
	case KindStr, KindRaw:
		return encodeString(buf, v.Str)
	case KindNull:
		buf.WriteString("null")
	case KindSet, KindSequence:
		buf.WriteString(`{"type":"`)
		buf.WriteString(v.Kind.String())
		buf.WriteString(`","elements":[`)
		for i, e := range v.Elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteString("]}")
	case KindRecord:
		buf.WriteString(`{"type":"record","fields":{`)
		for i, f := range v.Fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, f.Name); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Val.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteString("}}")
	case KindFunction:
		buf.WriteString(`{"type":"function","mapping":[`)
		for i, p := range v.Pairs {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('[')
			if err := p.Key.encode(buf); err != nil {
				return err
			}
			buf.WriteByte(',')
			if err := p.Val.encode(buf); err != nil {
				return err
			}
			buf.WriteByte(']')
		}
		buf.WriteString("]}")
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
