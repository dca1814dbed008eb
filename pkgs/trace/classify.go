package trace

import (
	"regexp"
	"strconv"
	"strings"
)

// LineClass categorizes one line of checker output.
type LineClass int

const (
	LineUnrecognized LineClass = iota
	LineInvariantViolation
	LinePropertyViolation
	LineTraceStart
	LineStateHeader
	LineAssignment
)

var lineClassNames = [...]string{
	LineUnrecognized:       "unrecognized",
	LineInvariantViolation: "invariant-violation",
	LinePropertyViolation:  "property-violation",
	LineTraceStart:         "trace-start",
	LineStateHeader:        "state-header",
	LineAssignment:         "assignment",
}

func (c LineClass) String() string {
	if int(c) >= 0 && int(c) < len(lineClassNames) {
		return lineClassNames[c]
	}
	return "unknown"
}

// Line is the classification result. Only the fields relevant to Class are
// populated.
type Line struct {
	Class LineClass

	// Name is the violated invariant or property; empty for unnamed
	// temporal-property announcements.
	Name string

	Index  int    // state header
	Action string // state header, empty when absent

	Variable string // assignment
	Expr     string // assignment, unparsed value text
}

// Structural markers and patterns of TLC's trace output.
var (
	invariantRe = regexp.MustCompile(`Invariant (\w+) is violated`)
	propertyRe  = regexp.MustCompile(`Property (\w+) is violated`)
	stateRe     = regexp.MustCompile(`^State (\d+):`)
	actionRe    = regexp.MustCompile(`<(\w+)`)
	assignRe    = regexp.MustCompile(`^/\\ (\w+) = (.+)$`)
)

const (
	traceStartMarker = "The behavior up to this point is:"
	temporalMarker   = "Temporal properties were violated"
)

// Classify categorizes a single (right-trimmed) line of checker output.
// A value wrapped across physical lines is not reassembled here; the
// overflow comes back as unrecognized continuation text.
func Classify(line string) Line {
	if m := stateRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		cl := Line{Class: LineStateHeader, Index: n}
		// e.g. "State 2: <Buy line 40, col 3 to line 44, col 20 of module Shop>"
		if am := actionRe.FindStringSubmatch(line); am != nil {
			cl.Action = am[1]
		}
		return cl
	}

	if m := assignRe.FindStringSubmatch(line); m != nil {
		return Line{Class: LineAssignment, Variable: m[1], Expr: m[2]}
	}

	if m := invariantRe.FindStringSubmatch(line); m != nil {
		return Line{Class: LineInvariantViolation, Name: m[1]}
	}

	if m := propertyRe.FindStringSubmatch(line); m != nil {
		return Line{Class: LinePropertyViolation, Name: m[1]}
	}
	if strings.Contains(line, temporalMarker) {
		return Line{Class: LinePropertyViolation}
	}

	if strings.Contains(line, traceStartMarker) {
		return Line{Class: LineTraceStart}
	}

	return Line{Class: LineUnrecognized}
}
