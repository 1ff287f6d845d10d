package parse

import "strings"

// CommentKind distinguishes line comments from block comments.
type CommentKind int

const (
	// LineComment is a comment running to the end of its line.
	LineComment CommentKind = iota

	// BlockComment is a delimited comment that may span lines.
	BlockComment
)

// Comment is a comment found by a Tokenizer.
type Comment struct {
	// Kind is the comment form.
	Kind CommentKind

	// Text is the comment body without delimiters.
	Text string

	// Start and End are byte offsets of the full comment, delimiters
	// included, so that src[Start:End] is the raw comment.
	Start, End int
}

// Tokenizer locates comments in source text.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Ordering: comments are returned in source order and do not overlap.
//   - Errors: a document the tokenizer cannot read returns an error
//     matching ErrTokenize; no partial result is used.
type Tokenizer interface {
	Comments(src string) ([]Comment, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(src string) ([]Comment, error)

// Comments calls f(src).
func (f TokenizerFunc) Comments(src string) ([]Comment, error) {
	return f(src)
}

func lineAt(src string, offset int) int {
	if offset > len(src) {
		offset = len(src)
	}
	return strings.Count(src[:offset], "\n") + 1
}
