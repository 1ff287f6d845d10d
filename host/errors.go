package host

import (
	"errors"
	"fmt"
)

// Sentinel errors for error classification.
var (
	// ErrScript indicates the example code raised an error.
	ErrScript = errors.New("script error")

	// ErrWaitPending indicates a second wait was requested in the same turn.
	ErrWaitPending = errors.New("wait already requested for this example")

	// ErrReleased indicates a primitive was used after its example finished.
	ErrReleased = errors.New("example environment released")

	// ErrNotCallable indicates a wait condition was neither a duration nor a
	// predicate.
	ErrNotCallable = errors.New("wait condition is not callable")
)

// ScriptError represents an error raised by example code.
type ScriptError struct {
	// Message is the error as the script would print it.
	Message string

	// Stack is the host's stack trace, if any.
	Stack string

	// Line is the 1-based line where the error was raised.
	// Zero indicates the line is unknown.
	Line int

	// Err is the underlying error, if any.
	Err error
}

// Error returns the error message, including the line if available.
func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s (line %d)", e.Message, e.Line)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ScriptError) Unwrap() error {
	return e.Err
}

// Is reports whether this error matches the target.
// ScriptError matches ErrScript to allow sentinel-style error checking.
func (e *ScriptError) Is(target error) bool {
	return target == ErrScript
}
