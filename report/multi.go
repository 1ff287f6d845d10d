package report

import (
	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/match"
)

// Multi sends every event to each reporter in order.
type Multi []Reporter

// OnSuccess implements Reporter.
func (m Multi) OnSuccess(ex *example.Example, actual string) {
	for _, r := range m {
		r.OnSuccess(ex, actual)
	}
}

// OnFailure implements Reporter.
func (m Multi) OnFailure(ex *example.Example, actual string, table *match.Table) {
	for _, r := range m {
		r.OnFailure(ex, actual, table)
	}
}

// OnAbort implements Reporter.
func (m Multi) OnAbort(ex *example.Example, message string) {
	for _, r := range m {
		r.OnAbort(ex, message)
	}
}

// OnFinish implements Reporter.
func (m Multi) OnFinish(s *Summary) {
	for _, r := range m {
		r.OnFinish(s)
	}
}
