package sgf

import "strings"

// StripVariations drops every nested game tree, keeping the top-level
// parentheses and the main sequence of each game. Brackets inside property
// values are text, not structure.
func StripVariations(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	depth := 0
	inValue, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inValue {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == ']':
				inValue = false
			}
			if depth <= 1 {
				b.WriteByte(c)
			}
			continue
		}

		switch c {
		case '(':
			depth++
			if depth == 1 {
				b.WriteByte(c)
			}
		case ')':
			if depth == 1 {
				b.WriteByte(c)
			}
			if depth > 0 {
				depth--
			}
		default:
			if c == '[' {
				inValue = true
			}
			if depth <= 1 {
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}
