package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Warning records a lossy or low-confidence parsing event. The parser never
// fails, so anything it could not represent structurally is reported here
// instead of being dropped without a signal.
type Warning struct {
	Message string
	Text    string // the offending source text
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %q", w.Message, w.Text)
}

// Parser turns literal text into Values and accumulates warnings across
// calls. The zero value is ready to use.
type Parser struct {
	warnings []Warning
}

// Warnings returns the warnings accumulated so far.
func (p *Parser) Warnings() []Warning {
	return p.warnings
}

// TakeWarnings returns the accumulated warnings and resets the collection.
func (p *Parser) TakeWarnings() []Warning {
	w := p.warnings
	p.warnings = nil
	return w
}

func (p *Parser) warnf(text, format string, args ...interface{}) {
	p.warnings = append(p.warnings, Warning{
		Message: fmt.Sprintf(format, args...),
		Text:    text,
	})
}

// Parse is a total function from text to exactly one Value. Dispatch tries
// each grammar rule against the whole (trimmed) input; anything unrecognized
// becomes a Raw node rather than an error.
func (p *Parser) Parse(text string) Value {
	s := strings.TrimSpace(text)

	switch s {
	case "TRUE":
		return Bool(true)
	case "FALSE":
		return Bool(false)
	case "NULL", "null":
		return Null()
	}

	if isInteger(s) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			// digits but outside int64 range
			p.warnf(s, "integer literal out of range")
			return Raw(s)
		}
		return Int(n)
	}

	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return Str(s[1 : len(s)-1])
	}

	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return p.parseElems(KindSet, s, s[1:len(s)-1])
	}

	if len(s) >= 4 && strings.HasPrefix(s, "<<") && strings.HasSuffix(s, ">>") {
		return p.parseElems(KindSequence, s, s[2:len(s)-2])
	}

	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return p.parseRecord(s, s[1:len(s)-1])
	}

	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' && strings.Contains(s, ":>") {
		return p.parseFunction(s[1 : len(s)-1])
	}

	return Raw(s)
}

// parseElems handles the set and sequence rules, which differ only in the
// outer delimiter already stripped by the caller.
func (p *Parser) parseElems(kind Kind, whole, inner string) Value {
	inner = strings.TrimSpace(inner)
	if !Balanced(inner) {
		p.warnf(whole, "unbalanced delimiters, best-effort split")
	}
	parts := SplitList(inner)
	elems := make([]Value, 0, len(parts))
	for _, part := range parts {
		elems = append(elems, p.Parse(part))
	}
	return Value{Kind: kind, Elems: elems}
}

// recordSep is the literal token between a record field name and its value.
const recordSep = " |-> "

func (p *Parser) parseRecord(whole, inner string) Value {
	inner = strings.TrimSpace(inner)
	if !Balanced(inner) {
		p.warnf(whole, "unbalanced delimiters, best-effort split")
	}
	parts := SplitList(inner)
	fields := make([]Field, 0, len(parts))
	for _, part := range parts {
		idx := strings.Index(part, recordSep)
		if idx < 0 {
			// The legacy converter dropped these without a trace; keep the
			// field out of the record but surface the loss.
			p.warnf(part, "record part without %q separator skipped", strings.TrimSpace(recordSep))
			continue
		}
		fields = append(fields, Field{
			Name: strings.TrimSpace(part[:idx]),
			Val:  p.Parse(part[idx+len(recordSep):]),
		})
	}
	return Value{Kind: KindRecord, Fields: fields}
}

// parseFunction parses the explicit function form (k1 :> v1 @@ k2 :> v2).
//
// The split on @@ is deliberately not delimiter-aware, matching the observable
// behavior downstream consumers already depend on: a key or value that itself
// contains @@ inside nested structure will misparse into Raw segments.
func (p *Parser) parseFunction(inner string) Value {
	var pairs []Pair
	for _, segment := range strings.Split(inner, "@@") {
		segment = strings.TrimSpace(segment)
		idx := strings.Index(segment, ":>")
		if idx < 0 {
			if segment != "" {
				p.warnf(segment, "function segment without :> skipped")
			}
			continue
		}
		key := p.Parse(segment[:idx])
		val := p.Parse(segment[idx+2:])

		// last occurrence wins, first appearance keeps its position
		replaced := false
		for i := range pairs {
			if pairs[i].Key.Equal(key) {
				pairs[i].Val = val
				replaced = true
				break
			}
		}
		if !replaced {
			pairs = append(pairs, Pair{Key: key, Val: val})
		}
	}
	return Value{Kind: KindFunction, Pairs: pairs}
}

// isInteger reports whether s is all digits with an optional leading minus.
func isInteger(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Parse parses one literal using a throwaway parser, discarding warnings.
// Use a Parser instance when the warning channel matters.
func Parse(text string) Value {
	var p Parser
	return p.Parse(text)
}
