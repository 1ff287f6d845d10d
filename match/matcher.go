package match

import (
	"github.com/acarl005/stripansi"
)

// Matcher judges captured output against an expectation.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Errors: Match never fails; an expectation that cannot be compiled
//     simply does not match.
//   - Purity: the same inputs always produce the same Result.
type Matcher interface {
	Match(actual, expected string) Result
}

// Result is the verdict of a single comparison.
type Result struct {
	// Passed is true when the output satisfied the expectation.
	Passed bool

	// Table is a line-by-line breakdown of a failed multi-line comparison.
	// It is nil on success or when no useful breakdown exists.
	Table *Table
}

// Options configures the default matcher.
type Options struct {
	// StripANSI removes terminal escape sequences from the captured output
	// before comparison.
	StripANSI bool

	// NoTable disables construction of mismatch tables.
	NoTable bool
}

// DefaultMatcher implements Matcher with wildcard patterns.
type DefaultMatcher struct {
	opts Options
}

// New creates a DefaultMatcher.
func New(opts Options) *DefaultMatcher {
	return &DefaultMatcher{opts: opts}
}

// Match cleans both sides and matches actual against the compiled
// expectation.
func (m *DefaultMatcher) Match(actual, expected string) Result {
	if m.opts.StripANSI {
		actual = stripansi.Strip(actual)
	}
	got := Clean(actual)
	want := Clean(expected)

	p, err := Compile(want)
	if err == nil && p.MatchString(got) {
		return Result{Passed: true}
	}

	res := Result{}
	if !m.opts.NoTable {
		res.Table = BuildTable(got, want)
	}
	return res
}

// Default is a matcher with default options.
var Default Matcher = New(Options{})
