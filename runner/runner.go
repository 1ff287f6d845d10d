package runner

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/host"
)

// Runner executes examples in order and reports their verdicts. A Runner
// runs one session; it is not safe for concurrent use.
type Runner struct {
	cfg      Config
	examples []*example.Example
	state    State
	session  *Session
}

// New creates a Runner.
func New(cfg Config) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Runner{cfg: cfg}, nil
}

// Add appends examples to the session. Examples without an ID are
// numbered in order of addition.
func (r *Runner) Add(examples ...*example.Example) error {
	if r.state != StateIdle {
		return ErrAlreadyRun
	}
	for _, ex := range examples {
		if ex == nil {
			return fmt.Errorf("%w: nil example", ErrConfiguration)
		}
		r.examples = append(r.examples, ex)
		if ex.ID == "" {
			ex.ID = fmt.Sprintf("example-%d", len(r.examples))
		}
	}
	return nil
}

// Examples returns the examples added so far.
func (r *Runner) Examples() []*example.Example {
	return slices.Clone(r.examples)
}

// State returns the runner's lifecycle state.
func (r *Runner) State() State {
	return r.state
}

// Session returns the current session, or nil before Run.
func (r *Runner) Session() *Session {
	return r.session
}

// Run executes every example and returns the finished session. If ctx ends
// first, the session is finished early, marked canceled, and returned along
// with the context's error.
func (r *Runner) Run(ctx context.Context) (*Session, error) {
	if r.state != StateIdle {
		return nil, ErrAlreadyRun
	}
	if len(r.examples) == 0 {
		return nil, ErrNoExamples
	}

	s := newSession(r.examples, r.cfg.Clock.Now())
	r.session = s
	r.state = StateRunning
	r.cfg.Log.Info("Starting doctest session", "session", s.ID, "examples", len(s.Examples))

	var runErr error
	for ex := s.next(); ex != nil; ex = s.next() {
		if err := context.Cause(ctx); err != nil {
			s.cursor--
			s.Canceled = true
			runErr = err
			break
		}
		if err := r.runExample(ctx, ex); err != nil {
			s.Canceled = true
			runErr = err
			break
		}
	}

	r.finish(s)
	return s, runErr
}

// runExample executes, optionally suspends, and judges one example. It
// returns an error only when ctx ended while the example was suspended.
func (r *Runner) runExample(ctx context.Context, ex *example.Example) error {
	env := host.NewEnv(ex, r.cfg.Console)
	r.cfg.Log.Debug("Running example", "id", ex.ID, "label", ex.Label())

	out := r.cfg.Host.Execute(ctx, ex.Code, env)
	aborted := r.record(env, out)

	var (
		timedOut bool
		waitErr  error
	)
	if req, ok := env.Pending(); ok && !aborted {
		timedOut, waitErr = r.suspend(ctx, env, req)
	}
	r.judge(env, timedOut)
	return waitErr
}

// record applies the outcome of evaluation to the example. It reports
// whether the example aborted.
func (r *Runner) record(env *host.Env, out host.Outcome) bool {
	switch o := out.(type) {
	case host.Threw:
		r.writeError(env, o.Err)
	case host.Aborted:
		env.Abort(o.Message)
		return true
	}
	return false
}

func (r *Runner) writeError(env *host.Env, err error) {
	msg := err.Error()
	env.Write("Error: " + msg + "\n")
	env.Example().SetError(msg)

	var serr *host.ScriptError
	if errors.As(err, &serr) && serr.Stack != "" {
		fmt.Fprintln(r.cfg.Console, serr.Stack)
	}
}

// suspend polls the wait condition until it resolves, times out, or ctx
// ends.
func (r *Runner) suspend(ctx context.Context, env *host.Env, req host.WaitRequest) (timedOut bool, err error) {
	r.state = StateSuspended
	defer func() { r.state = StateRunning }()

	w := newSuspension(req, r.cfg.Clock.Now(), r.cfg.DefaultTimeout)
	ticker, _ := r.cfg.Host.(host.Ticker)
	r.cfg.Log.Debug("Suspending example", "id", env.Example().ID, "timeout", w.timeout)

	for {
		select {
		case <-ctx.Done():
			err := context.Cause(ctx)
			r.writeError(env, err)
			return false, err
		case <-r.cfg.Clock.After(r.cfg.PollInterval):
		}

		now := r.cfg.Clock.Now()
		if ticker != nil {
			ticker.Tick(now)
		}
		state, elapsed, condErr := w.check(now)
		switch state {
		case waitResolved:
			if condErr != nil {
				r.writeError(env, condErr)
			}
			return false, nil
		case waitTimedOut:
			env.Write(fmt.Sprintf("Error: wait timed out after %d milliseconds\n", elapsed.Milliseconds()))
			r.cfg.Log.Warn("Wait timed out", "id", env.Example().ID, "elapsed", elapsed)
			return true, nil
		}
	}
}

// judge releases the environment, matches the output, and reports. A
// timed-out example is always a failure.
func (r *Runner) judge(env *host.Env, timedOut bool) {
	env.Release()
	ex := env.Example()
	actual := ex.Output()

	res := r.cfg.Matcher.Match(actual, ex.Expected)
	switch {
	case timedOut:
		// A wait that never resolved fails whatever the expectation.
		ex.Status = example.StatusTimedOut
		r.cfg.Reporter.OnFailure(ex, actual, res.Table)
	case res.Passed:
		ex.Status = example.StatusPassed
		r.cfg.Reporter.OnSuccess(ex, actual)
	default:
		ex.Status = example.StatusFailed
		r.cfg.Reporter.OnFailure(ex, actual, res.Table)
	}
	r.cfg.Log.Debug("Judged example", "id", ex.ID, "status", ex.Status)

	if msg := env.AbortMessage(); msg != "" {
		r.session.AbortMessage = msg
		r.session.AbortedBy = ex
		r.cfg.Log.Warn("Session aborted", "id", ex.ID, "message", msg)
		r.cfg.Reporter.OnAbort(ex, msg)
	}
}

// finish marks unrun examples skipped and delivers the summary.
func (r *Runner) finish(s *Session) {
	for _, ex := range s.Examples[s.cursor:] {
		ex.Status = example.StatusSkipped
	}
	s.Finished = r.cfg.Clock.Now()
	r.state = StateFinished

	sum := s.Summary()
	r.cfg.Log.Info("Finished doctest session", "session", s.ID,
		"passed", sum.Passed, "failed", sum.Failed, "timedout", sum.TimedOut,
		"skipped", sum.Skipped, "duration", sum.Duration)
	r.cfg.Reporter.OnFinish(sum)
}
