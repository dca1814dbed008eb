package trace

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/modelcheck/tlctrace/pkgs/value"
)

// The canonical form exists for fingerprinting: two runs of the checker that
// print the same counterexample must hash identically, so the trace is
// flattened into plain structs and encoded with deterministic CBOR.

const canonicalVersion = 1

type canonicalTrace struct {
	Version   uint8
	SpecName  string
	Invariant string
	Property  string
	States    []canonicalState
}

type canonicalState struct {
	Index  int
	Action string
	Vars   []canonicalVar
}

type canonicalVar struct {
	Name string
	Val  canonicalValue
}

type canonicalValue struct {
	Type   string
	Bool   bool
	Int    int64
	Str    string
	Elems  []canonicalValue
	Fields []canonicalField
	Pairs  []canonicalPair
}

type canonicalField struct {
	Name string
	Val  canonicalValue
}

type canonicalPair struct {
	Key canonicalValue
	Val canonicalValue
}

func canonicalize(t *Trace) canonicalTrace {
	ct := canonicalTrace{
		Version:   canonicalVersion,
		SpecName:  t.SpecName,
		Invariant: t.InvariantViolated,
		Property:  t.PropertyViolated,
		States:    make([]canonicalState, len(t.States)),
	}
	for i, s := range t.States {
		cs := canonicalState{
			Index:  s.Index,
			Action: s.Action,
			Vars:   make([]canonicalVar, len(s.Variables)),
		}
		for j, v := range s.Variables {
			cs.Vars[j] = canonicalVar{Name: v.Name, Val: canonicalizeValue(v.Val)}
		}
		ct.States[i] = cs
	}
	return ct
}

func canonicalizeValue(v value.Value) canonicalValue {
	cv := canonicalValue{Type: v.Kind.String()}
	switch v.Kind {
	case value.KindBool:
		cv.Bool = v.Bool
	case value.KindInt:
		cv.Int = v.Int
	case value.KindStr, value.KindRaw:
		cv.Str = v.Str
	case value.KindSet, value.KindSequence:
		cv.Elems = make([]canonicalValue, len(v.Elems))
		for i, e := range v.Elems {
			cv.Elems[i] = canonicalizeValue(e)
		}
	case value.KindRecord:
		cv.Fields = make([]canonicalField, len(v.Fields))
		for i, f := range v.Fields {
			cv.Fields[i] = canonicalField{Name: f.Name, Val: canonicalizeValue(f.Val)}
		}
	case value.KindFunction:
		cv.Pairs = make([]canonicalPair, len(v.Pairs))
		for i, p := range v.Pairs {
			cv.Pairs[i] = canonicalPair{
				Key: canonicalizeValue(p.Key),
				Val: canonicalizeValue(p.Val),
			}
		}
	}
	return cv
}

// MarshalBinary produces the deterministic CBOR encoding of the canonical
// form, byte-for-byte stable across runs.
func (t *Trace) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	ct := canonicalize(t)
	data, err := encMode.Marshal(&ct)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Fingerprint is the hex SHA-256 of the canonical encoding. Identical
// counterexamples from different checker runs fingerprint identically, which
// is what makes deduplication across runs possible.
func (t *Trace) Fingerprint() (string, error) {
	data, err := t.MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
