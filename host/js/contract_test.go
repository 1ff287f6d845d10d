package js

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/host"
)

func TestHostContract_CanceledContext(t *testing.T) {
	h := newHost(t, Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ex := example.New(`write("x")`, "")
	env := host.NewEnv(ex, nil)
	defer env.Release()

	out := h.Execute(ctx, ex.Code, env)
	threw, ok := out.(host.Threw)
	if !ok {
		t.Fatalf("Execute outcome = %T, want host.Threw", out)
	}
	if !errors.Is(threw.Err, context.Canceled) {
		t.Fatalf("Threw.Err = %v, want context.Canceled", threw.Err)
	}
	if ex.Output() != "" {
		t.Fatalf("canceled example wrote %q", ex.Output())
	}
}

func TestHostContract_ClosedHost(t *testing.T) {
	h, err := New(Config{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	ex := example.New(`1`, "")
	env := host.NewEnv(ex, nil)
	defer env.Release()

	out := h.Execute(context.Background(), ex.Code, env)
	threw, ok := out.(host.Threw)
	if !ok || !errors.Is(threw.Err, ErrClosed) {
		t.Fatalf("Execute after Close = %#v, want Threw(ErrClosed)", out)
	}
}

func TestHostContract_BindingsEndWithTurn(t *testing.T) {
	h := newHost(t, Config{})

	first := example.New(`var keep = write`, "")
	env := host.NewEnv(first, nil)
	h.Execute(context.Background(), first.Code, env)
	env.Release()

	// A reference kept past the turn must not reach the old example.
	second := example.New(`keep("late"); typeof write`, "")
	env2 := host.NewEnv(second, nil)
	out := h.Execute(context.Background(), second.Code, env2)
	env2.Release()

	if first.Output() != "" {
		t.Fatalf("released example received output %q", first.Output())
	}
	done, ok := out.(host.Completed)
	if !ok || done.Value != `"function"` {
		t.Fatalf("outcome = %#v, want Completed(\"function\")", out)
	}
}
