package runner

import (
	"time"

	"github.com/jonwraymond/doctest/host"
)

type waitState int

const (
	waitPending waitState = iota
	waitResolved
	waitTimedOut
)

// suspension tracks one example's wait.
type suspension struct {
	cond    host.Condition
	started time.Time
	timeout time.Duration
}

func newSuspension(req host.WaitRequest, started time.Time, defaultTimeout time.Duration) *suspension {
	return &suspension{
		cond:    req.Cond,
		started: started,
		timeout: waitTimeout(req, defaultTimeout),
	}
}

// waitTimeout computes the deadline for a wait request.
func waitTimeout(req host.WaitRequest, defaultTimeout time.Duration) time.Duration {
	d, isDuration := req.Cond.(host.Duration)
	switch {
	case !isDuration:
		if req.HardTimeout > 0 {
			return req.HardTimeout
		}
		return defaultTimeout
	case req.HardTimeout > 0:
		if req.HardTimeout < time.Duration(d) {
			return time.Duration(d) + WaitMargin
		}
		return req.HardTimeout
	default:
		return max(defaultTimeout, time.Duration(d)+WaitMargin)
	}
}

// check evaluates the wait at now. The condition is consulted before the
// deadline, so a condition satisfied on the last poll still resolves.
func (s *suspension) check(now time.Time) (waitState, time.Duration, error) {
	elapsed := now.Sub(s.started)
	ok, err := s.cond.Satisfied(elapsed)
	switch {
	case err != nil, ok:
		return waitResolved, elapsed, err
	case elapsed > s.timeout:
		return waitTimedOut, elapsed, nil
	}
	return waitPending, elapsed, nil
}
