package runner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/host"
	"github.com/jonwraymond/doctest/report"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "Host")

	_, err = New(Config{Host: newFakeHost(nil), PollInterval: -time.Second})
	assert.ErrorIs(t, err, ErrConfiguration)

	_, err = New(Config{Host: newFakeHost(nil), DefaultTimeout: -time.Second})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestNew_Defaults(t *testing.T) {
	r, err := New(Config{Host: newFakeHost(nil)})
	require.NoError(t, err)

	assert.Equal(t, DefaultTimeout, r.cfg.DefaultTimeout)
	assert.Equal(t, DefaultPollInterval, r.cfg.PollInterval)
	assert.NotNil(t, r.cfg.Matcher)
	assert.NotNil(t, r.cfg.Reporter)
	assert.NotNil(t, r.cfg.Clock)
	assert.Equal(t, StateIdle, r.State())
	assert.Nil(t, r.Session())
}

func TestRun_NoExamples(t *testing.T) {
	r, err := New(Config{Host: newFakeHost(nil), Reporter: report.NewRecorder()})
	require.NoError(t, err)

	_, err = r.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoExamples)
}

func TestRun_Twice(t *testing.T) {
	f := newFixture(t, nil, example.New("a", ""))

	_, err := f.run(t, context.Background())
	require.NoError(t, err)

	_, err = f.runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrAlreadyRun)
	assert.ErrorIs(t, f.runner.Add(example.New("b", "")), ErrAlreadyRun)
}

func TestAdd_AssignsIDs(t *testing.T) {
	f := newFixture(t, nil, example.New("a", ""), example.New("b", "", example.WithID("custom")))
	require.NoError(t, f.runner.Add(example.New("c", "")))

	exs := f.runner.Examples()
	require.Len(t, exs, 3)
	assert.Equal(t, "example-1", exs[0].ID)
	assert.Equal(t, "custom", exs[1].ID)
	assert.Equal(t, "example-3", exs[2].ID)

	assert.ErrorIs(t, f.runner.Add(nil), ErrConfiguration)
}

func TestRun_PassAndFail(t *testing.T) {
	pass := example.New("one", "1")
	fail := example.New("two", "3")
	f := newFixture(t, map[string]script{
		"one": printing("1\n"),
		"two": printing("2\n"),
	}, pass, fail)

	s, err := f.run(t, context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, f.host.Calls())
	assert.Equal(t, example.StatusPassed, pass.Status)
	assert.Equal(t, example.StatusFailed, fail.Status)
	assert.Equal(t, []report.EventKind{report.EventSuccess, report.EventFailure, report.EventFinish}, f.recorder.Kinds())

	events := f.recorder.Events()
	assert.Equal(t, "2\n", events[1].Actual)

	sum := f.recorder.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, s.ID, sum.ID)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Passed)
	assert.Equal(t, 1, sum.Failed)
	assert.False(t, s.OK())
	assert.Equal(t, StateFinished, f.runner.State())
}

func TestRun_UniqueSessionIDs(t *testing.T) {
	a := newFixture(t, nil, example.New("x", ""))
	b := newFixture(t, nil, example.New("x", ""))

	sa, err := a.run(t, context.Background())
	require.NoError(t, err)
	sb, err := b.run(t, context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, sa.ID)
	assert.NotEqual(t, sa.ID, sb.ID)
}

func TestRun_ThrewWritesError(t *testing.T) {
	ex := example.New("boom", "before\nError: ...")
	f := newFixture(t, map[string]script{
		"boom": func(env *host.Env) host.Outcome {
			env.Write("before\n")
			return host.Threw{Err: &host.ScriptError{Message: "kaboom", Stack: "at line 1"}}
		},
	}, ex)

	_, err := f.run(t, context.Background())
	require.NoError(t, err)

	assert.Equal(t, "before\nError: kaboom\n", ex.Output())
	assert.Equal(t, "kaboom", ex.Err())
	assert.Equal(t, example.StatusPassed, ex.Status)
	assert.Contains(t, f.runner.cfg.Console.(*safeBuffer).String(), "at line 1")
}

func TestRun_AbortSkipsRest(t *testing.T) {
	first := example.New("first", "")
	second := example.New("second", "partial")
	third := example.New("third", "")
	f := newFixture(t, map[string]script{
		"second": func(env *host.Env) host.Outcome {
			env.Write("partial\n")
			require.NoError(t, env.Wait(host.Duration(time.Hour), 0))
			return host.Aborted{Message: "stop"}
		},
	}, first, second, third)

	s, err := f.run(t, context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second"}, f.host.Calls())
	assert.Zero(t, f.host.Ticks())
	assert.Equal(t, example.StatusPassed, second.Status)
	assert.Equal(t, example.StatusSkipped, third.Status)
	assert.Equal(t, "stop", s.AbortMessage)
	assert.Same(t, second, s.AbortedBy)
	assert.Equal(t, []report.EventKind{
		report.EventSuccess, report.EventSuccess, report.EventAbort, report.EventFinish,
	}, f.recorder.Kinds())
	assert.Equal(t, "stop", f.recorder.Events()[2].Message)

	sum := f.recorder.Summary()
	assert.True(t, sum.Aborted())
	assert.Equal(t, 1, sum.Skipped)
}

func TestRun_AbortCalledWithoutThrow(t *testing.T) {
	ex := example.New("a", "")
	next := example.New("b", "")
	f := newFixture(t, map[string]script{
		"a": func(env *host.Env) host.Outcome {
			env.Abort("")
			return host.Completed{}
		},
	}, ex, next)

	s, err := f.run(t, context.Background())
	require.NoError(t, err)
	assert.Equal(t, host.DefaultAbortMessage, s.AbortMessage)
	assert.Equal(t, example.StatusSkipped, next.Status)
}

func TestRun_WaitDuration(t *testing.T) {
	ex := example.New("waits", "done")
	f := newFixture(t, map[string]script{
		"waits": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Duration(250*time.Millisecond), 0))
			env.Write("done\n")
			return host.Completed{}
		},
	}, ex)

	_, err := f.run(t, context.Background())
	require.NoError(t, err)

	assert.Equal(t, example.StatusPassed, ex.Status)
	assert.GreaterOrEqual(t, f.host.Ticks(), 1)
}

func TestRun_WaitPredicate(t *testing.T) {
	ex := example.New("poll", "ready")
	scripts := map[string]script{}
	f := newFixture(t, scripts, ex)

	var states []State
	polls := 0
	scripts["poll"] = func(env *host.Env) host.Outcome {
		require.NoError(t, env.Wait(host.Until(func() (bool, error) {
			states = append(states, f.runner.State())
			polls++
			if polls == 3 {
				env.Write("ready\n")
				return true, nil
			}
			return false, nil
		}), 0))
		return host.Completed{}
	}

	_, err := f.run(t, context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, polls)
	assert.Equal(t, example.StatusPassed, ex.Status)
	for _, st := range states {
		assert.Equal(t, StateSuspended, st)
	}
	assert.Equal(t, f.host.Ticks(), polls)
}

func TestRun_WaitTimesOut(t *testing.T) {
	wildcard := example.New("never", "...")
	notice := example.New("never", "Error: wait timed out after ? milliseconds")
	missed := example.New("never", "something else")
	f := newFixture(t, map[string]script{
		"never": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Until(func() (bool, error) { return false, nil }), 300*time.Millisecond))
			return host.Completed{}
		},
	}, wildcard, notice, missed)

	s, err := f.run(t, context.Background())
	require.NoError(t, err)

	for _, ex := range []*example.Example{wildcard, notice, missed} {
		assert.Equal(t, example.StatusTimedOut, ex.Status, ex.Expected)
		assert.True(t, strings.HasPrefix(ex.Output(), "Error: wait timed out after "))
	}
	assert.Equal(t, []report.EventKind{
		report.EventFailure, report.EventFailure, report.EventFailure, report.EventFinish,
	}, f.recorder.Kinds())
	assert.Equal(t, 3, f.recorder.Summary().TimedOut)
	assert.Equal(t, 0, f.recorder.Summary().Passed)
	assert.False(t, s.OK())
}

func TestRun_ReportsInRegistrationOrder(t *testing.T) {
	polls := 0
	scripts := map[string]script{
		"sync": printing("ok\n"),
		"sleep": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Duration(200*time.Millisecond), 0))
			env.Write("ok\n")
			return host.Completed{}
		},
		"poll": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Until(func() (bool, error) {
				polls++
				if polls == 5 {
					env.Write("ok\n")
					return true, nil
				}
				return false, nil
			}), 0))
			return host.Completed{}
		},
		"stuck": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Until(func() (bool, error) { return false, nil }), 150*time.Millisecond))
			return host.Completed{}
		},
	}
	examples := []*example.Example{
		example.New("sleep", "ok"),
		example.New("sync", "ok"),
		example.New("stuck", "ok"),
		example.New("poll", "ok"),
		example.New("sync", "ok"),
		example.New("sleep", "ok"),
		example.New("stuck", "ok"),
		example.New("sync", "ok"),
	}
	f := newFixture(t, scripts, examples...)

	_, err := f.run(t, context.Background())
	require.NoError(t, err)

	events := f.recorder.Events()
	require.Len(t, events, len(examples)+1)
	for i, ex := range examples {
		assert.Same(t, ex, events[i].Example, "event %d", i)
	}
	assert.Equal(t, report.EventFinish, events[len(examples)].Kind)

	want := []example.Status{
		example.StatusPassed, example.StatusPassed, example.StatusTimedOut, example.StatusPassed,
		example.StatusPassed, example.StatusPassed, example.StatusTimedOut, example.StatusPassed,
	}
	for i, ex := range examples {
		assert.Equal(t, want[i], ex.Status, ex.ID)
	}
}

func TestRun_WaitPredicateError(t *testing.T) {
	ex := example.New("bad", "Error: predicate broke")
	f := newFixture(t, map[string]script{
		"bad": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Until(func() (bool, error) {
				return false, errors.New("predicate broke")
			}), 0))
			return host.Completed{}
		},
	}, ex)

	_, err := f.run(t, context.Background())
	require.NoError(t, err)
	assert.Equal(t, example.StatusPassed, ex.Status)
}

func TestRun_OutputAfterReleaseIsDropped(t *testing.T) {
	var leaked *host.Env
	first := example.New("first", "mine")
	second := example.New("second", "theirs")
	f := newFixture(t, map[string]script{
		"first": func(env *host.Env) host.Outcome {
			leaked = env
			env.Write("mine\n")
			return host.Completed{}
		},
		"second": func(env *host.Env) host.Outcome {
			leaked.Write("stray\n")
			env.Write("theirs\n")
			return host.Completed{}
		},
	}, first, second)

	_, err := f.run(t, context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mine\n", first.Output())
	assert.Equal(t, "theirs\n", second.Output())
}

func TestRun_CanceledWhileSuspended(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ex := example.New("hang", "")
	later := example.New("later", "")
	f := newFixture(t, map[string]script{
		"hang": func(env *host.Env) host.Outcome {
			require.NoError(t, env.Wait(host.Until(func() (bool, error) {
				cancel()
				return false, nil
			}), time.Hour))
			return host.Completed{}
		},
	}, ex, later)

	s, err := f.run(t, ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.True(t, s.Canceled)
	assert.Equal(t, example.StatusFailed, ex.Status)
	assert.Contains(t, ex.Output(), "Error: context canceled")
	assert.Equal(t, example.StatusSkipped, later.Status)
	assert.Equal(t, []string{"hang"}, f.host.Calls())
	assert.True(t, f.recorder.Summary().Canceled)
}

func TestRun_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, b := example.New("a", ""), example.New("b", "")
	f := newFixture(t, nil, a, b)

	s, err := f.run(t, ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, s.Canceled)
	assert.Empty(t, f.host.Calls())
	assert.Equal(t, example.StatusSkipped, a.Status)
	assert.Equal(t, example.StatusSkipped, b.Status)
	assert.Equal(t, []report.EventKind{report.EventFinish}, f.recorder.Kinds())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "suspended", StateSuspended.String())
	assert.Equal(t, "unknown", State(42).String())
}
