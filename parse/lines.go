package parse

import (
	"regexp"
	"strings"

	"github.com/jonwraymond/doctest/match"
)

var (
	promptLine       = regexp.MustCompile(`^\s*\$`)
	promptPrefix     = regexp.MustCompile(`^\s*\$ ?`)
	continuationLine = regexp.MustCompile(`^>`)
	continuationPfx  = regexp.MustCompile(`^> ?`)
)

// ParseLines reads a transcript in the line-marker convention.
//
// Text before the first "$" line is ignored. A ">" line that does not follow
// a "$" line is an error. An example closes when the next "$" line begins or
// the input ends.
//
// A transcript may be indented as a whole, e.g. inside a Markdown code
// block: ">" continues the example only at the indentation of its "$" line,
// and the expected output is dedented.
func ParseLines(text string) ([]Block, error) {
	var (
		blocks  []Block
		cur     *Block
		code    []string
		out     []string
		rawCode []string
		indent  string
	)
	flush := func() {
		if cur == nil {
			return
		}
		cur.Code = strings.Join(code, "\n")
		cur.RawCode = strings.Join(rawCode, "\n")
		cur.RawExpected = strings.Join(out, "\n")
		cur.Expected = Dedent(cur.RawExpected)
		blocks = append(blocks, *cur)
		cur, code, out, rawCode = nil, nil, nil, nil
	}

	for i, line := range match.SplitLines(text) {
		switch {
		case promptLine.MatchString(line):
			flush()
			cur = &Block{Line: i + 1}
			indent = line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			code = append(code, promptPrefix.ReplaceAllString(line, ""))
			rawCode = append(rawCode, line)
		case cur == nil && continuationLine.MatchString(line):
			return nil, &SyntaxError{Line: i + 1, Text: line, Reason: "> line not preceded by $"}
		case cur != nil && strings.HasPrefix(line, indent) && continuationLine.MatchString(line[len(indent):]):
			code = append(code, continuationPfx.ReplaceAllString(line[len(indent):], ""))
			rawCode = append(rawCode, line)
		case cur != nil:
			out = append(out, line)
		}
	}
	flush()
	return blocks, nil
}
