package parse

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrParse indicates a structurally invalid document.
	ErrParse = errors.New("parse error")

	// ErrMissingTokenizer indicates the comment convention was requested
	// without a tokenizer.
	ErrMissingTokenizer = errors.New("no tokenizer configured")

	// ErrTokenize indicates the tokenizer could not read the document.
	ErrTokenize = errors.New("tokenize error")
)

// SyntaxError describes a malformed line in a document.
type SyntaxError struct {
	// Line is the 1-based line number of the offending line.
	Line int

	// Text is the offending line.
	Text string

	// Reason describes what is wrong with it.
	Reason string
}

// Error returns the error message with its line number.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad example at line %d: %q: %s", e.Line, e.Text, e.Reason)
}

// Is reports whether this error matches the target.
// SyntaxError matches ErrParse.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrParse
}

// TokenizeError reports a tokenizer failure at a byte offset.
type TokenizeError struct {
	// Offset is the byte offset where scanning failed.
	Offset int

	// Line is the 1-based line of Offset.
	Line int

	// Reason describes the failure.
	Reason string
}

// Error returns the error message with its line number.
func (e *TokenizeError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Is reports whether this error matches the target.
// TokenizeError matches ErrTokenize.
func (e *TokenizeError) Is(target error) bool {
	return target == ErrTokenize
}
