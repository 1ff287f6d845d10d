package report

import (
	"time"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/match"
)

// Reporter receives the verdicts of a session.
//
// Contract:
//   - Concurrency: calls arrive from one goroutine, in session order.
//   - Ordering: every judged example produces exactly one OnSuccess or
//     OnFailure. OnAbort follows the verdict of the example that aborted.
//     OnFinish is called last, exactly once.
//   - Ownership: examples and the summary belong to the session and must
//     not be modified.
type Reporter interface {
	// OnSuccess is called when an example's output matched.
	OnSuccess(ex *example.Example, actual string)

	// OnFailure is called when an example's output did not match. table
	// is a line-by-line breakdown, or nil.
	OnFailure(ex *example.Example, actual string, table *match.Table)

	// OnAbort is called when ex ended the session early.
	OnAbort(ex *example.Example, message string)

	// OnFinish is called once when the session is over.
	OnFinish(s *Summary)
}

// Summary is the final account of a session.
type Summary struct {
	// ID uniquely identifies the session.
	ID string

	// Started is when the session began.
	Started time.Time

	// Duration is how long the session took.
	Duration time.Duration

	// Total is the number of examples in the session.
	Total int

	// Passed, Failed, TimedOut, and Skipped count examples by status.
	Passed, Failed, TimedOut, Skipped int

	// AbortMessage is the abort message, or "" if the session was not
	// aborted.
	AbortMessage string

	// AbortedBy is the example that aborted the session, if any.
	AbortedBy *example.Example

	// Canceled is true when the session stopped because its context ended.
	Canceled bool

	// Examples are the session's examples in order.
	Examples []*example.Example
}

// Aborted reports whether the session ended early through an abort.
func (s *Summary) Aborted() bool {
	return s.AbortedBy != nil || s.AbortMessage != ""
}

// OK reports whether every example passed and the session ran to the end.
func (s *Summary) OK() bool {
	return !s.Aborted() && !s.Canceled && s.Passed == s.Total
}

// Count tallies examples by status into the summary.
func (s *Summary) Count() {
	s.Total = len(s.Examples)
	s.Passed, s.Failed, s.TimedOut, s.Skipped = 0, 0, 0, 0
	for _, ex := range s.Examples {
		switch ex.Status {
		case example.StatusPassed:
			s.Passed++
		case example.StatusFailed:
			s.Failed++
		case example.StatusTimedOut:
			s.TimedOut++
		case example.StatusSkipped:
			s.Skipped++
		}
	}
}

// Failures returns the examples that failed or timed out.
func (s *Summary) Failures() []*example.Example {
	var out []*example.Example
	for _, ex := range s.Examples {
		if ex.Status == example.StatusFailed || ex.Status == example.StatusTimedOut {
			out = append(out, ex)
		}
	}
	return out
}
