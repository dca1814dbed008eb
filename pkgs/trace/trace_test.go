package trace_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/modelcheck/tlctrace/pkgs/trace"
	"github.com/modelcheck/tlctrace/pkgs/value"
)

func TestVariableNames(t *testing.T) {
	tr := twoStateTrace()
	if diff := cmp.Diff([]string{"lots", "cash"}, tr.VariableNames()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterVariables(t *testing.T) {
	tr := twoStateTrace()
	unknown := tr.FilterVariables("cash")
	assert.Empty(t, unknown)

	for _, s := range tr.States {
		assert.Len(t, s.Variables, 1)
		assert.Equal(t, "cash", s.Variables[0].Name)
	}
}

func TestFilterVariablesUnknownName(t *testing.T) {
	tr := twoStateTrace()
	unknown := tr.FilterVariables("cash", "inventry")
	assert.Equal(t, []string{"inventry"}, unknown)
}

func TestFilterVariablesEmptyListKeepsAll(t *testing.T) {
	tr := twoStateTrace()
	assert.Empty(t, tr.FilterVariables())
	assert.Len(t, tr.States[0].Variables, 2)
}

func TestSuggestVariable(t *testing.T) {
	tr := &trace.Trace{
		States: []trace.State{{
			Index: 1,
			Variables: []trace.Variable{
				{Name: "inventory", Val: value.Int(1)},
				{Name: "cash", Val: value.Int(2)},
			},
		}},
	}

	assert.Equal(t, "inventory", tr.SuggestVariable("invntory"))
	assert.Equal(t, "cash", tr.SuggestVariable("CASH"))
	assert.Equal(t, "", tr.SuggestVariable("zzz"))
}

func TestTraceResolved(t *testing.T) {
	tr := twoStateTrace()
	assert.True(t, tr.Resolved())

	tr.States[0].Variables[0].Val = value.Raw("Append(x, 1)")
	assert.False(t, tr.Resolved())
}
