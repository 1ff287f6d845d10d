package example

import (
	"fmt"
	"regexp"
	"strings"
)

const summaryWidth = 20

// Example is a single code fragment with its expected output.
type Example struct {
	// ID identifies the example within its session, e.g. "example-3".
	// Assigned by the runner when empty.
	ID string

	// Code is the source text to execute.
	Code string

	// Expected is the expected output, possibly with wildcards.
	Expected string

	// RawCode is the code as it appeared in the source document,
	// including prompt markers. Defaults to Code.
	RawCode string

	// RawExpected is the expectation as it appeared in the source document,
	// including comment delimiters. Defaults to Expected.
	RawExpected string

	// Source names the document the example came from, if any.
	Source string

	// Section is the name of the section containing the example, if any.
	Section string

	// Line is the 1-based line in Source where the example starts.
	// Zero means unknown.
	Line int

	// Status is the verdict recorded by the runner.
	Status Status

	output  []string
	console []string
	err     string
}

// Option configures an Example at construction.
type Option func(*Example)

// WithSource records the document the example came from.
func WithSource(source string, line int) Option {
	return func(e *Example) {
		e.Source = source
		e.Line = line
	}
}

// WithSection records the section containing the example.
func WithSection(section string) Option {
	return func(e *Example) {
		e.Section = section
	}
}

// WithRaw records the raw text of the example as it appeared in its source.
func WithRaw(code, expected string) Option {
	return func(e *Example) {
		e.RawCode = code
		e.RawExpected = expected
	}
}

// WithID sets the example identifier.
func WithID(id string) Option {
	return func(e *Example) {
		e.ID = id
	}
}

// New creates an example from code and its expected output.
func New(code, expected string, opts ...Option) *Example {
	e := &Example{
		Code:        code,
		Expected:    expected,
		RawCode:     code,
		RawExpected: expected,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewFromValue creates an example whose expected output arrives as an
// untyped value, as from a decoded document. Only strings are accepted.
func NewFromValue(code string, expected any, opts ...Option) (*Example, error) {
	s, ok := expected.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %v (%T)", ErrInvalidExpected, expected, expected)
	}
	return New(code, s, opts...), nil
}

// Write appends text to the captured output.
func (e *Example) Write(text string) {
	e.output = append(e.output, text)
}

// WriteConsole appends a line of console output.
func (e *Example) WriteConsole(line string) {
	e.console = append(e.console, line)
}

// Output returns everything written to the example, in order.
func (e *Example) Output() string {
	return strings.Join(e.output, "")
}

// ConsoleOutput returns the captured console lines joined by newlines.
func (e *Example) ConsoleOutput() string {
	return strings.Join(e.console, "\n")
}

// SetError records the failure that interrupted execution.
func (e *Example) SetError(msg string) {
	e.err = msg
}

// Err returns the recorded execution failure, or "".
func (e *Example) Err() string {
	return e.err
}

var wildcards = regexp.MustCompile(`\.\.\.|\?`)

// HasWildcards reports whether the expectation uses "..." or "?".
func (e *Example) HasWildcards() bool {
	return wildcards.MatchString(e.Expected)
}

// Summary returns a short one-line label for the example.
func (e *Example) Summary() string {
	code := strings.TrimSpace(e.Code)
	if r := []rune(code); len(r) > summaryWidth {
		code = string(r[:summaryWidth])
	}
	return strings.TrimSpace(code) + "..."
}

// Label returns the example's location when known, otherwise its summary.
func (e *Example) Label() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d", e.Source, e.Line)
	case e.Source != "":
		return e.Source
	case e.ID != "":
		return e.ID
	}
	return e.Summary()
}
