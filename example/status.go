package example

// Status is the verdict recorded on an example once the session is done
// with it.
type Status int

const (
	// StatusPending means the example has not been judged yet.
	StatusPending Status = iota

	// StatusPassed means the captured output matched the expectation.
	StatusPassed

	// StatusFailed means the captured output did not match.
	StatusFailed

	// StatusTimedOut means a wait never resolved and the output, including
	// the timeout notice, did not match.
	StatusTimedOut

	// StatusSkipped means the session was aborted before the example ran.
	StatusSkipped
)

var statusNames = [...]string{
	StatusPending:  "pending",
	StatusPassed:   "passed",
	StatusFailed:   "failed",
	StatusTimedOut: "timed out",
	StatusSkipped:  "skipped",
}

// String returns the lower-case name of the status.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Done reports whether the status is a final verdict.
func (s Status) Done() bool {
	return s != StatusPending
}
