package host

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/jonwraymond/doctest/example"
)

// DefaultAbortMessage is used when Abort is called without a message.
const DefaultAbortMessage = "aborted"

// Env is the set of primitives available to one example while it runs.
// It is safe for concurrent use.
type Env struct {
	mu       sync.Mutex
	ex       *example.Example
	console  io.Writer
	wait     *WaitRequest
	abort    string
	released bool
	hooks    []func()
}

// NewEnv binds a new environment to ex. Console lines are forwarded to
// console, which may be nil.
func NewEnv(ex *example.Example, console io.Writer) *Env {
	if console == nil {
		console = io.Discard
	}
	return &Env{ex: ex, console: console}
}

// Example returns the example the environment is bound to.
func (e *Env) Example() *example.Example {
	return e.ex
}

// Console returns the real console writer.
func (e *Env) Console() io.Writer {
	return e.console
}

// Write appends text to the example's output. After Release it is a no-op.
func (e *Env) Write(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return
	}
	e.ex.Write(text)
}

// Log forwards a console line to the real console and, until Release,
// records it on the example.
func (e *Env) Log(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintln(e.console, line)
	if !e.released {
		e.ex.WriteConsole(line)
	}
}

// Wait asks the runner to suspend the example until cond is satisfied or
// the deadline passes. Only one wait may be requested per example.
func (e *Env) Wait(cond Condition, hardTimeout time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.released:
		return ErrReleased
	case cond == nil:
		return ErrNotCallable
	case e.wait != nil:
		return ErrWaitPending
	}
	e.wait = &WaitRequest{Cond: cond, HardTimeout: hardTimeout}
	return nil
}

// Pending returns the requested wait, if any.
func (e *Env) Pending() (WaitRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.wait == nil {
		return WaitRequest{}, false
	}
	return *e.wait, true
}

// Abort requests that the session end after this example and returns the
// message recorded. An empty message becomes DefaultAbortMessage. The first
// abort wins.
func (e *Env) Abort(message string) string {
	if message == "" {
		message = DefaultAbortMessage
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released {
		return message
	}
	if e.abort == "" {
		e.abort = message
	}
	return e.abort
}

// AbortMessage returns the recorded abort message, or "".
func (e *Env) AbortMessage() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.abort
}

// OnRelease registers fn to run when the environment is released. Hooks
// run in reverse order of registration. If the environment is already
// released, fn runs immediately.
func (e *Env) OnRelease(fn func()) {
	e.mu.Lock()
	if !e.released {
		e.hooks = append(e.hooks, fn)
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()
	fn()
}

// Release detaches the environment from its example and runs the release
// hooks. It is idempotent.
func (e *Env) Release() {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return
	}
	e.released = true
	hooks := e.hooks
	e.hooks = nil
	e.mu.Unlock()

	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}

// Released reports whether Release has been called.
func (e *Env) Released() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.released
}
