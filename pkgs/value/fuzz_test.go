package value_test

import (
	"encoding/json"
	"testing"

	"github.com/modelcheck/tlctrace/pkgs/value"
)

// FuzzParse checks totality: every input produces exactly one Value without
// panicking, and that Value always encodes to valid JSON.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"TRUE",
		"-17",
		`"hello"`,
		"{1, 2, 3}",
		"<<1, <<2, 3>>>>",
		"[units |-> 5, cost |-> 10]",
		`(1 :> "a" @@ 2 :> "b")`,
		"NULL",
		"{<<[a |-> (1 :> {})]>>}",
		"}{",
		"<<",
		`"unterminated`,
		"[a |-> ",
		"(:>@@:>)",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v := value.Parse(input)

		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal of Parse(%q) failed: %v", input, err)
		}
		if !json.Valid(b) {
			t.Fatalf("Parse(%q) encoded to invalid JSON: %s", input, b)
		}
	})
}

// FuzzSplitList checks that splitting never panics and never invents
// delimiter characters that were not in the input.
func FuzzSplitList(f *testing.F) {
	f.Add("1, 2, 3")
	f.Add(`"a,b", {1, [x |-> 2]}`)
	f.Add("<<1>>, <<2>>")
	f.Add("}{,][")

	f.Fuzz(func(t *testing.T, input string) {
		elems := value.SplitList(input)
		for _, e := range elems {
			if e == "" {
				t.Fatalf("SplitList(%q) produced an empty element", input)
			}
		}
	})
}
