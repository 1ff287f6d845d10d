package report

import (
	"sync"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/match"
)

// EventKind identifies a reporter callback.
type EventKind string

// Event kinds.
const (
	EventSuccess EventKind = "success"
	EventFailure EventKind = "failure"
	EventAbort   EventKind = "abort"
	EventFinish  EventKind = "finish"
)

// Event is one recorded reporter callback.
type Event struct {
	Kind    EventKind
	Example *example.Example
	Actual  string
	Table   *match.Table
	Message string
	Summary *Summary
}

// Recorder is a Reporter that keeps every event. It is safe for
// concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// OnSuccess implements Reporter.
func (r *Recorder) OnSuccess(ex *example.Example, actual string) {
	r.add(Event{Kind: EventSuccess, Example: ex, Actual: actual})
}

// OnFailure implements Reporter.
func (r *Recorder) OnFailure(ex *example.Example, actual string, table *match.Table) {
	r.add(Event{Kind: EventFailure, Example: ex, Actual: actual, Table: table})
}

// OnAbort implements Reporter.
func (r *Recorder) OnAbort(ex *example.Example, message string) {
	r.add(Event{Kind: EventAbort, Example: ex, Message: message})
}

// OnFinish implements Reporter.
func (r *Recorder) OnFinish(s *Summary) {
	r.add(Event{Kind: EventFinish, Summary: s})
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Kinds returns the kinds of the recorded events, in order.
func (r *Recorder) Kinds() []EventKind {
	events := r.Events()
	out := make([]EventKind, len(events))
	for i, e := range events {
		out[i] = e.Kind
	}
	return out
}

// Summary returns the summary passed to OnFinish, or nil.
func (r *Recorder) Summary() *Summary {
	for _, e := range r.Events() {
		if e.Kind == EventFinish {
			return e.Summary
		}
	}
	return nil
}
