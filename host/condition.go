package host

import "time"

// Condition decides when a suspended example may be judged.
type Condition interface {
	// Satisfied reports whether the wait is over after elapsed time.
	Satisfied(elapsed time.Duration) (bool, error)
}

// Duration is satisfied once the given time has passed.
type Duration time.Duration

// Satisfied reports whether elapsed has reached d.
func (d Duration) Satisfied(elapsed time.Duration) (bool, error) {
	return elapsed >= time.Duration(d), nil
}

// Until is satisfied when the predicate returns true. A predicate error
// ends the wait.
type Until func() (bool, error)

// Satisfied calls the predicate.
func (u Until) Satisfied(time.Duration) (bool, error) {
	return u()
}

// WaitRequest is a suspension requested by example code.
type WaitRequest struct {
	// Cond decides when the wait is over.
	Cond Condition

	// HardTimeout overrides the runner's deadline when non-zero.
	HardTimeout time.Duration
}
