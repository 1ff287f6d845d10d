package host

import (
	"context"
	"time"
)

// Host evaluates example code.
//
// Contract:
//   - Concurrency: Execute is called from one goroutine at a time.
//   - Context: must stop evaluation when ctx is canceled and report the
//     cancellation as Threw.
//   - Errors: failures in the example code are reported as Threw, never
//     as a panic.
//   - Ownership: env belongs to the runner; the host may register release
//     hooks but must not call Release.
type Host interface {
	// Execute evaluates code with env's primitives in scope.
	Execute(ctx context.Context, code string, env *Env) Outcome
}

// Ticker is implemented by hosts with deferred work such as timers. The
// runner calls Tick on every poll while an example is suspended, before the
// wait condition is checked.
type Ticker interface {
	Tick(now time.Time)
}

// Closer is implemented by hosts holding resources.
type Closer interface {
	Close() error
}

// Outcome is how evaluation of an example ended.
type Outcome interface {
	outcome()
}

// Completed means the code ran to the end.
type Completed struct {
	// Value is the printable completion value, if the host reports one.
	Value string
}

// Threw means the code raised an error.
type Threw struct {
	Err error
}

// Aborted means the code raised the host's abort signal.
type Aborted struct {
	Message string
}

func (Completed) outcome() {}
func (Threw) outcome()     {}
func (Aborted) outcome()   {}
