// Package selector decides whether selector text references a kept class
// name. It works on the text as written in the stylesheet, where the ":", "."
// and "/" of utility class names appear escaped, and does not parse CSS.
package selector

import (
	"regexp"
	"strings"
	"unicode"
)

// nonClass is a run of anything that isn't a class, a list separator or the
// start of a block: elements, combinators, pseudo classes, attributes.
const nonClass = `[^.\s,{]+`

var escaper = strings.NewReplacer(`:`, `\:`, `.`, `\.`, `/`, `\/`)

// Pattern matches selectors against a set of kept class names. It is built
// once and safe for concurrent use.
type Pattern struct {
	// whole matches an alternative made only of non class segments and kept
	// class segments.
	whole *regexp.Regexp

	// class matches a kept class anywhere. It is nil when nothing is kept.
	class *regexp.Regexp
}

// Build compiles a Pattern for the given class names.
func Build(names []string) *Pattern {
	if len(names) == 0 {
		return &Pattern{
			whole: regexp.MustCompile(`^\s*(?:` + nonClass + `\s*)+$`),
		}
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(escaper.Replace(n))
	}
	classes := `\.(?:` + strings.Join(quoted, "|") + `)`

	// A kept class must not be the prefix of a longer identifier, so it is
	// followed by whitespace, a pseudo class or element, a separator, or the
	// end of the text.
	return &Pattern{
		whole: regexp.MustCompile(
			`^\s*(?:(?:` + nonClass + `|` + classes + `(?:\s|:[^.\s,{]*|$))\s*)+$`),
		class: regexp.MustCompile(`(?:^|[^\\])` + classes + `(?:[:\s,{]|$)`),
	}
}

// MatchesAnywhere reports whether sel should be kept: it either references a
// kept class anywhere, or is made of non class segments only. The braces of
// the rule are not part of sel.
func (p *Pattern) MatchesAnywhere(sel string) bool {
	if p.class != nil && p.class.MatchString(sel) {
		return true
	}
	return p.whole.MatchString(sel)
}

// FilterList returns the alternatives of the selector list sel that
// MatchesAnywhere, joined by commas. Alternatives keep their text, but the
// first survivor takes the indentation of the list when the alternatives
// before it were dropped. It returns the empty string if none survive.
func (p *Pattern) FilterList(sel string) string {
	var kept []string
	for i, alt := range Split(sel) {
		if !p.MatchesAnywhere(alt) {
			continue
		}
		alt = strings.TrimRightFunc(alt, unicode.IsSpace)
		if len(kept) == 0 && i > 0 {
			alt = indent(sel) + strings.TrimLeftFunc(alt, unicode.IsSpace)
		}
		kept = append(kept, alt)
	}
	return strings.Join(kept, ",")
}

func indent(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// Split splits a selector list on its top level commas. Commas inside
// parentheses, brackets or strings, and escaped commas, don't split.
func Split(sel string) []string {
	var (
		parts []string
		depth int
		start int
		quote byte
	)
	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case c == '\\':
			i++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		case c == ',' && depth == 0:
			parts = append(parts, sel[start:i])
			start = i + 1
		}
	}
	return append(parts, sel[start:])
}
