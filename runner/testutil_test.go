package runner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/host"
	"github.com/jonwraymond/doctest/report"
)

// script is what the fake host does for one piece of code.
type script func(env *host.Env) host.Outcome

// fakeHost implements host.Host and host.Ticker for testing.
type fakeHost struct {
	mu sync.Mutex

	// Configurable behavior, keyed by code.
	scripts map[string]script

	// Call tracking
	calls []string
	ticks []time.Time
}

func newFakeHost(scripts map[string]script) *fakeHost {
	return &fakeHost{scripts: scripts}
}

func (f *fakeHost) Execute(_ context.Context, code string, env *host.Env) host.Outcome {
	f.mu.Lock()
	f.calls = append(f.calls, code)
	s := f.scripts[code]
	f.mu.Unlock()

	if s == nil {
		return host.Completed{}
	}
	return s(env)
}

func (f *fakeHost) Tick(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ticks = append(f.ticks, now)
}

func (f *fakeHost) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeHost) Ticks() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.ticks)
}

func printing(text string) script {
	return func(env *host.Env) host.Outcome {
		env.Write(text)
		return host.Completed{}
	}
}

type fixture struct {
	host     *fakeHost
	clock    *clock.Mock
	recorder *report.Recorder
	runner   *Runner
}

func newFixture(t *testing.T, scripts map[string]script, examples ...*example.Example) *fixture {
	t.Helper()
	f := &fixture{
		host:     newFakeHost(scripts),
		clock:    clock.NewMock(),
		recorder: report.NewRecorder(),
	}
	r, err := New(Config{
		Host:     f.host,
		Reporter: f.recorder,
		Clock:    f.clock,
		Console:  &safeBuffer{},
		Log:      log.New(),
	})
	require.NoError(t, err)
	require.NoError(t, r.Add(examples...))
	f.runner = r
	return f
}

// run executes the session while advancing the mock clock.
func (f *fixture) run(t *testing.T, ctx context.Context) (*Session, error) {
	t.Helper()
	type result struct {
		s   *Session
		err error
	}
	done := make(chan result, 1)
	go func() {
		s, err := f.runner.Run(ctx)
		done <- result{s, err}
	}()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case res := <-done:
			return res.s, res.err
		case <-deadline:
			t.Fatal("session did not finish")
			return nil, nil
		default:
			f.clock.Add(10 * time.Millisecond)
		}
	}
}

// safeBuffer is a goroutine-safe console.
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
