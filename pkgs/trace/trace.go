// Package trace reconstructs TLC counterexample traces from the checker's
// console output. Lines are classified one at a time and folded into an
// ordered sequence of states; variable values are parsed with pkgs/value.
package trace

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/modelcheck/tlctrace/pkgs/value"
)

// Variable is one named value inside a state. Order matters: variables keep
// the order in which the checker printed them.
type Variable struct {
	Name string
	Val  value.Value
}

// State is one step of the counterexample. It is created when a state header
// is seen, mutated by the assignment lines that follow, and sealed when the
// next header (or end of input) arrives.
type State struct {
	Index     int
	Action    string // empty when the header carried no action name
	Variables []Variable
}

// Set stores a variable, overwriting any prior value for the same name within
// this state while keeping its original position.
func (s *State) Set(name string, v value.Value) {
	for i := range s.Variables {
		if s.Variables[i].Name == name {
			s.Variables[i].Val = v
			return
		}
	}
	s.Variables = append(s.Variables, Variable{Name: name, Val: v})
}

// Lookup returns the value of a named variable.
func (s *State) Lookup(name string) (value.Value, bool) {
	for _, v := range s.Variables {
		if v.Name == name {
			return v.Val, true
		}
	}
	return value.Value{}, false
}

// Trace is a complete counterexample: the violated invariant or property (if
// announced) and the ordered states leading up to the violation.
type Trace struct {
	SpecName          string
	InvariantViolated string // empty = none announced
	PropertyViolated  string // empty = none announced
	States            []State
}

// Resolved reports whether every variable value in every state parsed fully,
// with no Raw fallback anywhere.
func (t *Trace) Resolved() bool {
	for _, s := range t.States {
		for _, v := range s.Variables {
			if !v.Val.Resolved() {
				return false
			}
		}
	}
	return true
}

// VariableNames returns the distinct variable names across all states, in
// first-appearance order.
func (t *Trace) VariableNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, s := range t.States {
		for _, v := range s.Variables {
			if !seen[v.Name] {
				seen[v.Name] = true
				names = append(names, v.Name)
			}
		}
	}
	return names
}

// FilterVariables drops every variable not in names from every state and
// returns the requested names that matched nothing anywhere in the trace.
// An empty names list leaves the trace untouched.
func (t *Trace) FilterVariables(names ...string) (unknown []string) {
	if len(names) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[n] = true
	}
	found := make(map[string]bool, len(names))
	for i := range t.States {
		kept := t.States[i].Variables[:0]
		for _, v := range t.States[i].Variables {
			if keep[v.Name] {
				found[v.Name] = true
				kept = append(kept, v)
			}
		}
		t.States[i].Variables = kept
	}
	for _, n := range names {
		if !found[n] {
			unknown = append(unknown, n)
		}
	}
	return unknown
}

// SuggestVariable returns the closest known variable name to the given one,
// or "" when nothing ranks. Used for did-you-mean hints on unknown names.
func (t *Trace) SuggestVariable(name string) string {
	ranks := fuzzy.RankFindNormalizedFold(name, t.VariableNames())
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}
