package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/modelcheck/tlctrace/pkgs/value"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  value.Value
	}{
		{"true", "TRUE", value.Bool(true)},
		{"false", "FALSE", value.Bool(false)},
		{"positive int", "42", value.Int(42)},
		{"negative int", "-7", value.Int(-7)},
		{"zero", "0", value.Int(0)},
		{"string", `"hello"`, value.Str("hello")},
		{"empty string", `""`, value.Str("")},
		{"string with spaces", `"a b c"`, value.Str("a b c")},
		{"null upper", "NULL", value.Null()},
		{"null lower", "null", value.Null()},
		{"surrounding whitespace trimmed", "  TRUE  ", value.Bool(true)},
		{"identifier falls back to raw", "Waiting", value.Raw("Waiting")},
		{"range expression falls back to raw", "1..3", value.Raw("1..3")},
		{"bare minus falls back to raw", "-", value.Raw("-")},
		{"mixed digits fall back to raw", "12ab", value.Raw("12ab")},
		{"empty input falls back to raw", "", value.Raw("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := value.Parse(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseSet(t *testing.T) {
	got := value.Parse("{1, 2, 3}")
	want := value.Set(value.Int(1), value.Int(2), value.Int(3))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	empty := value.Parse("{}")
	if empty.Kind != value.KindSet || len(empty.Elems) != 0 {
		t.Errorf("expected empty set, got %+v", empty)
	}
}

func TestParseSequence(t *testing.T) {
	got := value.Parse("<<1, 2>>")
	want := value.Sequence(value.Int(1), value.Int(2))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	empty := value.Parse("<<>>")
	if empty.Kind != value.KindSequence || len(empty.Elems) != 0 {
		t.Errorf("expected empty sequence, got %+v", empty)
	}

	nested := value.Parse("<<<<1>>, <<2, 3>>>>")
	wantNested := value.Sequence(
		value.Sequence(value.Int(1)),
		value.Sequence(value.Int(2), value.Int(3)),
	)
	if diff := cmp.Diff(wantNested, nested); diff != "" {
		t.Errorf("nested mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecord(t *testing.T) {
	got := value.Parse("[units |-> 5, cost |-> 10]")
	want := value.Record(
		value.Field{Name: "units", Val: value.Int(5)},
		value.Field{Name: "cost", Val: value.Int(10)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// A record's field order is its textual order, regardless of name ordering.
func TestParseRecordOrderPreserved(t *testing.T) {
	got := value.Parse(`[zebra |-> 1, apple |-> 2, mango |-> 3]`)
	if got.Kind != value.KindRecord {
		t.Fatalf("expected record, got %v", got.Kind)
	}
	var names []string
	for _, f := range got.Fields {
		names = append(names, f.Name)
	}
	if diff := cmp.Diff([]string{"zebra", "apple", "mango"}, names); diff != "" {
		t.Errorf("field order mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRecordMalformedPartWarns(t *testing.T) {
	var p value.Parser
	got := p.Parse("[units |-> 5, garbage, cost |-> 10]")

	want := value.Record(
		value.Field{Name: "units", Val: value.Int(5)},
		value.Field{Name: "cost", Val: value.Int(10)},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	warnings := p.TakeWarnings()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
	if warnings[0].Text != "garbage" {
		t.Errorf("warning should carry the dropped text, got %q", warnings[0].Text)
	}
	if len(p.TakeWarnings()) != 0 {
		t.Error("TakeWarnings should drain the collection")
	}
}

func TestParseFunction(t *testing.T) {
	got := value.Parse(`(1 :> "a" @@ 2 :> "b")`)
	want := value.Function(
		value.Pair{Key: value.Int(1), Val: value.Str("a")},
		value.Pair{Key: value.Int(2), Val: value.Str("b")},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// Duplicate keys resolve to the last occurrence while keeping the position of
// the first appearance.
func TestParseFunctionDuplicateKeys(t *testing.T) {
	got := value.Parse(`(1 :> "a" @@ 2 :> "b" @@ 1 :> "c")`)
	want := value.Function(
		value.Pair{Key: value.Int(1), Val: value.Str("c")},
		value.Pair{Key: value.Int(2), Val: value.Str("b")},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFunctionCompositeKeys(t *testing.T) {
	got := value.Parse(`(<<1, 2>> :> "x")`)
	want := value.Function(
		value.Pair{
			Key: value.Sequence(value.Int(1), value.Int(2)),
			Val: value.Str("x"),
		},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// The @@ split is not delimiter-aware. A string containing @@ misparses into
// raw segments; this pins that documented behavior so a change to it is a
// deliberate decision, not an accident.
func TestParseFunctionAtAtInsideStringLegacyBehavior(t *testing.T) {
	var p value.Parser
	got := p.Parse(`("a@@b" :> 1)`)

	if got.Kind != value.KindFunction {
		t.Fatalf("expected function, got %v", got.Kind)
	}
	if got.Resolved() {
		t.Error("misparsed function should not report as resolved")
	}
	if len(p.Warnings()) == 0 {
		t.Error("misparse should surface at least one warning")
	}
}

func TestParseNestedComposite(t *testing.T) {
	got := value.Parse(`[lots |-> <<[units |-> 5, cost |-> 10]>>, total |-> {1, 2}]`)
	want := value.Record(
		value.Field{Name: "lots", Val: value.Sequence(
			value.Record(
				value.Field{Name: "units", Val: value.Int(5)},
				value.Field{Name: "cost", Val: value.Int(10)},
			),
		)},
		value.Field{Name: "total", Val: value.Set(value.Int(1), value.Int(2))},
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !got.Resolved() {
		t.Error("fully structured value should report resolved")
	}
}

func TestParseIntegerOverflowFallsBack(t *testing.T) {
	var p value.Parser
	got := p.Parse("99999999999999999999999999")
	if got.Kind != value.KindRaw {
		t.Fatalf("expected raw fallback, got %v", got.Kind)
	}
	if len(p.Warnings()) != 1 {
		t.Errorf("expected an out-of-range warning, got %v", p.Warnings())
	}
}

func TestResolved(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"scalar", "42", true},
		{"raw", "Append(x, y)", false},
		{"set of scalars", "{1, 2}", true},
		{"set containing raw", "{1, oops}", false},
		{"record containing raw", "[a |-> oops]", false},
		{"function with raw key", "(k :> 1)", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := value.Parse(tt.input).Resolved(); got != tt.want {
				t.Errorf("Parse(%q).Resolved() = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
