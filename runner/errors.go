package runner

import "errors"

// Sentinel errors for error classification.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrNoExamples indicates Run was called with nothing to run.
	ErrNoExamples = errors.New("no examples to run")

	// ErrAlreadyRun indicates the runner has already started a session.
	ErrAlreadyRun = errors.New("session already started")
)
