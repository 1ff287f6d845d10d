package js

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dop251/goja"
	"github.com/ethereum/go-ethereum/log"

	"github.com/jonwraymond/doctest/host"
)

// Mode selects how examples share state.
type Mode string

const (
	// ModeShared runs every example in one runtime.
	ModeShared Mode = "shared"

	// ModeIsolated runs every example in a fresh runtime.
	ModeIsolated Mode = "isolated"
)

var (
	// ErrConfiguration indicates an invalid host configuration.
	ErrConfiguration = errors.New("configuration error")

	// ErrClosed indicates the host has been closed.
	ErrClosed = errors.New("host closed")
)

// Config configures a Host.
type Config struct {
	// Mode selects shared or isolated runtimes. Defaults to ModeShared.
	Mode Mode

	// EchoResult prints the completion value of each example, as an
	// interactive prompt would.
	EchoResult bool

	// Clock schedules timers. Defaults to the wall clock.
	Clock clock.Clock

	// Globals are set in every runtime before any example runs.
	Globals map[string]any

	// Log receives debug events. Defaults to log.Root().
	Log log.Logger
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch c.Mode {
	case "", ModeShared, ModeIsolated:
		return nil
	}
	return fmt.Errorf("%w: unknown mode %q", ErrConfiguration, c.Mode)
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeShared
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	if c.Log == nil {
		c.Log = log.Root()
	}
}

// Host is a host.Host backed by goja.
type Host struct {
	cfg     Config
	shared  *goja.Runtime
	current *binding
	closed  bool
}

// New creates a Host.
func New(cfg Config) (*Host, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	h := &Host{cfg: cfg}
	if cfg.Mode == ModeShared {
		h.shared = h.newRuntime()
	}
	return h, nil
}

func (h *Host) newRuntime() *goja.Runtime {
	vm := goja.New()
	for name, v := range h.cfg.Globals {
		_ = vm.Set(name, v)
	}
	return vm
}

// Execute evaluates code with env's primitives bound as globals. The
// bindings stay live until env is released, so that timers and wait
// predicates keep working while the runner polls.
func (h *Host) Execute(ctx context.Context, code string, env *host.Env) host.Outcome {
	if h.closed {
		return host.Threw{Err: ErrClosed}
	}
	if err := ctx.Err(); err != nil {
		return host.Threw{Err: err}
	}

	vm := h.shared
	if vm == nil {
		vm = h.newRuntime()
	}
	b := h.bind(vm, env)
	h.current = b
	env.OnRelease(func() {
		b.unbind()
		if h.current == b {
			h.current = nil
		}
	})

	ex := env.Example()
	h.cfg.Log.Debug("Executing example", "id", ex.ID, "mode", h.cfg.Mode)

	interrupted := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		vm.Interrupt(context.Cause(ctx))
		close(interrupted)
	})
	v, err := vm.RunScript(scriptName(ex.Source, ex.ID), code)
	if !stop() {
		<-interrupted
		vm.ClearInterrupt()
	}
	if err != nil {
		return b.outcome(err)
	}

	if v == nil || goja.IsUndefined(v) {
		return host.Completed{}
	}
	if b.isSentinel(v) {
		return host.Aborted{Message: env.AbortMessage()}
	}
	value := Repr(vm, v)
	if h.cfg.EchoResult {
		env.Write(value + "\n")
	}
	return host.Completed{Value: value}
}

// Tick fires the current example's timers that are due at now.
func (h *Host) Tick(now time.Time) {
	if h.current == nil {
		return
	}
	h.current.fire(now)
}

// Pending returns the number of timers waiting to fire.
func (h *Host) Pending() int {
	if h.current == nil {
		return 0
	}
	return h.current.timers.len()
}

// Close releases the shared runtime. Later calls to Execute fail.
func (h *Host) Close() error {
	h.closed = true
	h.shared = nil
	h.current = nil
	return nil
}

func scriptName(source, id string) string {
	switch {
	case source != "":
		return source
	case id != "":
		return id
	}
	return "example"
}

var (
	_ host.Host   = (*Host)(nil)
	_ host.Ticker = (*Host)(nil)
	_ host.Closer = (*Host)(nil)
)
