package parse

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMarker recognizes an expectation comment.
var DefaultMarker = regexp.MustCompile(`^\s*==?>`)

// CommentOptions configures ParseComments.
type CommentOptions struct {
	// Marker recognizes expectation comments. The matched prefix is removed
	// from the comment text along with any following spaces or tabs.
	// Defaults to DefaultMarker.
	Marker *regexp.Regexp
}

// ParseComments reads source code in the comment-marker convention.
//
// The code before each marker comment, back to the previous marker, becomes
// an example whose expectation is the comment text. A marker with no code
// before it extends the previous example's expectation with another line.
// Non-blank code after the last marker becomes an example with no expected
// output. The raw code and raw expectations of the returned blocks, in
// order, reproduce text exactly.
func ParseComments(text string, tok Tokenizer, opts CommentOptions) ([]Block, error) {
	if tok == nil {
		return nil, ErrMissingTokenizer
	}
	marker := opts.Marker
	if marker == nil {
		marker = DefaultMarker
	}
	comments, err := tok.Comments(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var blocks []Block
	pos := 0
	for _, c := range comments {
		loc := marker.FindStringIndex(c.Text)
		if loc == nil {
			continue
		}
		output := strings.TrimLeft(c.Text[loc[1]:], " \t")
		code := text[pos:c.Start]
		raw := text[c.Start:c.End]

		if strings.TrimSpace(code) == "" && len(blocks) > 0 {
			last := &blocks[len(blocks)-1]
			last.Expected += "\n" + output
			last.RawExpected += code + raw
		} else {
			blocks = append(blocks, Block{
				Code:        code,
				Expected:    output,
				RawCode:     code,
				RawExpected: raw,
				Line:        firstLine(text, pos, code),
			})
		}
		pos = c.End
	}

	tail := text[pos:]
	switch {
	case strings.TrimSpace(tail) != "":
		blocks = append(blocks, Block{Code: tail, RawCode: tail, Line: firstLine(text, pos, tail)})
	case len(blocks) > 0:
		blocks[len(blocks)-1].RawExpected += tail
	}
	return blocks, nil
}

// firstLine returns the line of the first non-blank character of code,
// which starts at offset in text.
func firstLine(text string, offset int, code string) int {
	lead := len(code) - len(strings.TrimLeft(code, " \t\r\n"))
	return lineAt(text, offset+lead)
}
