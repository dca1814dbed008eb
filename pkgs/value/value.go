// Package value parses the concrete literal-value syntax that the TLC model
// checker prints in counterexample traces: booleans, integers, strings, sets,
// sequences, records, and explicit functions. Parsing is total; text that
// matches no grammar rule is kept verbatim as a Raw node.
package value

// Kind discriminates the Value union.
type Kind int

const (
	KindRaw Kind = iota // unrecognized text, kept verbatim
	KindBool
	KindInt
	KindStr
	KindNull
	KindSet
	KindSequence
	KindRecord
	KindFunction
)

// Pre-computed kind name lookup for debugging output
var kindNames = [...]string{
	KindRaw:      "raw",
	KindBool:     "bool",
	KindInt:      "int",
	KindStr:      "string",
	KindNull:     "null",
	KindSet:      "set",
	KindSequence: "sequence",
	KindRecord:   "record",
	KindFunction: "function",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is a tagged union. Exactly the fields implied by Kind are meaningful;
// the rest stay zero. Composite kinds keep their elements in source order.
type Value struct {
	Kind Kind

	Bool bool
	Int  int64
	Str  string // KindStr content, or the original text for KindRaw

	Elems  []Value // KindSet, KindSequence
	Fields []Field // KindRecord, in textual order
	Pairs  []Pair  // KindFunction, in appearance order
}

// Field is one named record field.
type Field struct {
	Name string
	Val  Value
}

// Pair is one function mapping entry. Keys are arbitrary values, not just
// strings, which is why records and functions are separate kinds.
type Pair struct {
	Key Value
	Val Value
}

// Constructors for the scalar kinds.

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

func Str(s string) Value { return Value{Kind: KindStr, Str: s} }

func Null() Value { return Value{Kind: KindNull} }

func Raw(text string) Value { return Value{Kind: KindRaw, Str: text} }

// Set builds a set value from elements in source order.
func Set(elems ...Value) Value { return Value{Kind: KindSet, Elems: elems} }

// Sequence builds a sequence value from elements in source order.
func Sequence(elems ...Value) Value { return Value{Kind: KindSequence, Elems: elems} }

// Record builds a record value from fields in source order.
func Record(fields ...Field) Value { return Value{Kind: KindRecord, Fields: fields} }

// Function builds an explicit function value from pairs in appearance order.
func Function(pairs ...Pair) Value { return Value{Kind: KindFunction, Pairs: pairs} }

// Resolved reports whether the whole subtree was structurally parsed, with no
// Raw fallback anywhere. Consumers use this to tell structured values apart
// from best-effort text without re-inspecting it.
func (v Value) Resolved() bool {
	switch v.Kind {
	case KindRaw:
		return false
	case KindSet, KindSequence:
		for _, e := range v.Elems {
			if !e.Resolved() {
				return false
			}
		}
	case KindRecord:
		for _, f := range v.Fields {
			if !f.Val.Resolved() {
				return false
			}
		}
	case KindFunction:
		for _, p := range v.Pairs {
			if !p.Key.Resolved() || !p.Val.Resolved() {
				return false
			}
		}
	}
	return true
}

// Equal reports deep structural equality. Used for duplicate-key resolution
// in function values, where keys may themselves be composite.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindStr, KindRaw:
		return v.Str == o.Str
	case KindNull:
		return true
	case KindSet, KindSequence:
		if len(v.Elems) != len(o.Elems) {
			return false
		}
		for i := range v.Elems {
			if !v.Elems[i].Equal(o.Elems[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(v.Fields) != len(o.Fields) {
			return false
		}
		for i := range v.Fields {
			if v.Fields[i].Name != o.Fields[i].Name || !v.Fields[i].Val.Equal(o.Fields[i].Val) {
				return false
			}
		}
		return true
	case KindFunction:
		if len(v.Pairs) != len(o.Pairs) {
			return false
		}
		for i := range v.Pairs {
			if !v.Pairs[i].Key.Equal(o.Pairs[i].Key) || !v.Pairs[i].Val.Equal(o.Pairs[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}
