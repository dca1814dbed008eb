package trace

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/modelcheck/tlctrace/pkgs/errors"
	"github.com/modelcheck/tlctrace/pkgs/value"
)

// Diagnostic records a lossy or suspicious event seen while folding input
// lines into a trace. Diagnostics never abort extraction; they exist so the
// caller can decide whether a degraded trace is acceptable.
type Diagnostic struct {
	Line    int // 1-based input line number, 0 when not tied to a line
	Message string
	Text    string
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", d.Line, d.Message, d.Text)
	}
	return fmt.Sprintf("%s: %q", d.Message, d.Text)
}

// Builder folds classified lines into an ordered trace. It owns the
// in-progress trace exclusively until Finish hands it off; a Builder is for
// one input and is not safe for reuse.
type Builder struct {
	specName string
	logger   *slog.Logger
	parser   value.Parser

	trace      Trace
	open       *State
	inTrace    bool
	lastAssign bool
	line       int
	finished   bool

	diags []Diagnostic
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the debug logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// NewBuilder creates a builder for one checker run. specName is carried into
// the trace verbatim; the checker output itself does not repeat it.
func NewBuilder(specName string, opts ...Option) *Builder {
	b := &Builder{
		specName: specName,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Feed consumes one physical line of checker output.
func (b *Builder) Feed(raw string) {
	b.line++
	line := strings.TrimRight(raw, " \t\r\n")
	cl := Classify(line)

	wasAssign := b.lastAssign
	b.lastAssign = cl.Class == LineAssignment

	switch cl.Class {
	case LineInvariantViolation:
		b.trace.InvariantViolated = cl.Name
		b.inTrace = true
		b.logger.Debug("invariant violation announced", "invariant", cl.Name, "line", b.line)

	case LinePropertyViolation:
		b.trace.PropertyViolated = cl.Name
		b.inTrace = true
		if cl.Name == "" {
			b.diagf(line, "temporal property violated but unnamed")
		}
		b.logger.Debug("property violation announced", "property", cl.Name, "line", b.line)

	case LineTraceStart:
		b.inTrace = true

	case LineStateHeader:
		b.seal()
		if n := len(b.trace.States); n > 0 && cl.Index < b.trace.States[n-1].Index {
			b.diagf(line, "state index %d after %d, source order violated",
				cl.Index, b.trace.States[n-1].Index)
		}
		b.open = &State{Index: cl.Index, Action: cl.Action}
		b.inTrace = true
		b.logger.Debug("state opened", "index", cl.Index, "action", cl.Action)

	case LineAssignment:
		if !b.inTrace || b.open == nil {
			// assignment-shaped text outside any state, e.g. quoted TLA+
			// source in the preamble
			b.logger.Debug("assignment outside open state ignored", "line", b.line)
			return
		}
		v := b.parser.Parse(cl.Expr)
		for _, w := range b.parser.TakeWarnings() {
			b.diags = append(b.diags, Diagnostic{Line: b.line, Message: w.Message, Text: w.Text})
		}
		b.open.Set(cl.Variable, v)

	case LineUnrecognized:
		// Values wrapped across physical lines are not reassembled; flag the
		// overflow when it looks like an indented continuation of the
		// previous assignment.
		if b.inTrace && b.open != nil && wasAssign && line != "" &&
			(raw[0] == ' ' || raw[0] == '\t') {
			b.diagf(line, "possible wrapped value continuation skipped")
			b.lastAssign = wasAssign
		}
	}
}

// Finish seals any open state and hands the trace off. When no state header
// was ever seen it returns a NO_TRACE_FOUND error, which is the expected
// negative outcome for a clean checker run, not a fault.
func (b *Builder) Finish() (*Trace, []Diagnostic, error) {
	if !b.finished {
		b.seal()
		b.finished = true
	}
	if len(b.trace.States) == 0 {
		return nil, b.diags, errors.NewNoTraceError()
	}
	b.trace.SpecName = b.specName
	return &b.trace, b.diags, nil
}

func (b *Builder) seal() {
	if b.open != nil {
		b.trace.States = append(b.trace.States, *b.open)
		b.open = nil
	}
}

func (b *Builder) diagf(text, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{
		Line:    b.line,
		Message: fmt.Sprintf(format, args...),
		Text:    text,
	})
}

// Extract runs a Builder over everything in r. Read failures surface as
// INPUT_READ_ERROR, distinct from the NO_TRACE_FOUND outcome.
func Extract(r io.Reader, specName string, opts ...Option) (*Trace, []Diagnostic, error) {
	b := NewBuilder(specName, opts...)

	scanner := bufio.NewScanner(r)
	// TLC prints whole values on one line; large models produce very long ones.
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		b.Feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.NewInputError("failed reading checker output", err)
	}

	return b.Finish()
}
