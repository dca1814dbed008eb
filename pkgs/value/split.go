package value

import "strings"

// SplitList splits the interior of an already-stripped delimiter pair into
// its top-level comma-separated elements. Nesting is tracked across {…}, […],
// (…) and the two-character sequence delimiters <<…>>, and commas inside
// quoted strings are literal content. Elements come back trimmed, empty
// elements dropped.
//
// The sequence delimiters must be consumed as single tokens: scanning << as
// two independent '<' characters double-counts depth and breaks splitting of
// nested sequences. A lone '<' or '>' (as in the :> token) is ordinary text.
//
// Unbalanced input is not rejected here; the scan degrades to a best-effort
// split and the caller treats the result as low-confidence.
func SplitList(s string) []string {
	var elements []string
	var current strings.Builder
	depth := 0
	inString := false

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			current.WriteByte(c)
			switch c {
			case '\\':
				// keep the escaped character literal
				if i+1 < len(s) {
					i++
					current.WriteByte(s[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			current.WriteByte(c)
		case c == '<' && i+1 < len(s) && s[i+1] == '<':
			depth++
			current.WriteString("<<")
			i++
		case c == '>' && i+1 < len(s) && s[i+1] == '>':
			depth--
			current.WriteString(">>")
			i++
		case c == '{' || c == '[' || c == '(':
			depth++
			current.WriteByte(c)
		case c == '}' || c == ']' || c == ')':
			depth--
			current.WriteByte(c)
		case c == ',' && depth == 0:
			if e := strings.TrimSpace(current.String()); e != "" {
				elements = append(elements, e)
			}
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	if e := strings.TrimSpace(current.String()); e != "" {
		elements = append(elements, e)
	}

	return elements
}

// Balanced reports whether the scan that SplitList performs would end at
// depth zero outside a string. Callers use it to flag low-confidence splits.
func Balanced(s string) bool {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch {
		case c == '"':
			inString = true
		case c == '<' && i+1 < len(s) && s[i+1] == '<':
			depth++
			i++
		case c == '>' && i+1 < len(s) && s[i+1] == '>':
			depth--
			i++
		case c == '{' || c == '[' || c == '(':
			depth++
		case c == '}' || c == ']' || c == ')':
			depth--
		}
	}
	return depth == 0 && !inString
}
