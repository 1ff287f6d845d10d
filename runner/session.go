package runner

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/report"
)

// State is the lifecycle state of a runner.
type State int

const (
	// StateIdle means Run has not been called.
	StateIdle State = iota

	// StateRunning means an example is executing or being judged.
	StateRunning

	// StateSuspended means an example is waiting and the runner is polling.
	StateSuspended

	// StateFinished means the session is over.
	StateFinished
)

var stateNames = [...]string{
	StateIdle:      "idle",
	StateRunning:   "running",
	StateSuspended: "suspended",
	StateFinished:  "finished",
}

// String returns the lower-case name of the state.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Session is the record of one run.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// Examples are the session's examples in execution order.
	Examples []*example.Example

	// Started and Finished bracket the session.
	Started, Finished time.Time

	// AbortMessage is set when an example aborted the session.
	AbortMessage string

	// AbortedBy is the example that aborted the session.
	AbortedBy *example.Example

	// Canceled is true when the session's context ended before the last
	// example.
	Canceled bool

	cursor int
}

func newSession(examples []*example.Example, started time.Time) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Examples: examples,
		Started:  started,
	}
}

// next returns the next example to run, or nil when the session should
// stop.
func (s *Session) next() *example.Example {
	if s.AbortMessage != "" || s.Canceled || s.cursor >= len(s.Examples) {
		return nil
	}
	ex := s.Examples[s.cursor]
	s.cursor++
	return ex
}

// Summary returns the final account of the session.
func (s *Session) Summary() *report.Summary {
	sum := &report.Summary{
		ID:           s.ID,
		Started:      s.Started,
		Duration:     s.Finished.Sub(s.Started),
		AbortMessage: s.AbortMessage,
		AbortedBy:    s.AbortedBy,
		Canceled:     s.Canceled,
		Examples:     s.Examples,
	}
	sum.Count()
	return sum
}

// OK reports whether every example passed and the session ran to the end.
func (s *Session) OK() bool {
	return s.Summary().OK()
}
