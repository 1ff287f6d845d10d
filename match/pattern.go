package match

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	ellipsisExpr   = `[\s\S]*`
	tokenExpr      = `[A-Za-z0-9_.]+`
	whitespaceExpr = `[ \t]+`
	quoteExpr      = `['"]`
)

// Pattern is a compiled expectation.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile turns a cleaned expectation into a Pattern.
func Compile(expected string) (*Pattern, error) {
	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(expected); {
		switch c := expected[i]; {
		case strings.HasPrefix(expected[i:], "..."):
			b.WriteString(ellipsisExpr)
			i += 3
		case c == '?':
			b.WriteString(tokenExpr)
			i++
		case c == '\'' || c == '"':
			b.WriteString(quoteExpr)
			i++
		case c == ' ' || c == '\t':
			for i < len(expected) && (expected[i] == ' ' || expected[i] == '\t') {
				i++
			}
			b.WriteString(whitespaceExpr)
		default:
			j := i + 1
			for j < len(expected) && !special(expected, j) {
				j++
			}
			b.WriteString(regexp.QuoteMeta(expected[i:j]))
			i = j
		}
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("compile expectation %q: %w", expected, err)
	}
	return &Pattern{source: expected, re: re}, nil
}

func special(s string, i int) bool {
	switch s[i] {
	case '?', '\'', '"', ' ', '\t':
		return true
	case '.':
		return strings.HasPrefix(s[i:], "...")
	}
	return false
}

// MatchString reports whether s satisfies the pattern in full.
func (p *Pattern) MatchString(s string) bool {
	return p.re.MatchString(s)
}

// String returns the expectation the pattern was compiled from.
func (p *Pattern) String() string {
	return p.source
}

// Expr returns the compiled regular expression source.
func (p *Pattern) Expr() string {
	return p.re.String()
}
