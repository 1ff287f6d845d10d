package js

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/jonwraymond/doctest/host"
)

// globals are the names a binding installs into the runtime.
var globals = []string{
	"write", "writeln", "print", "wait", "Abort", "repr",
	"console", "setTimeout", "clearTimeout",
}

// binding exposes one example's Env to a runtime for the length of a turn.
type binding struct {
	h         *Host
	vm        *goja.Runtime
	env       *host.Env
	timers    timerQueue
	sentinels []*goja.Object
	saved     map[string]goja.Value
	released  bool
}

func (h *Host) bind(vm *goja.Runtime, env *host.Env) *binding {
	b := &binding{h: h, vm: vm, env: env, saved: make(map[string]goja.Value, len(globals))}
	values := map[string]any{
		"write":        b.write,
		"writeln":      b.writeln,
		"print":        b.writeln,
		"wait":         b.wait,
		"Abort":        b.abort,
		"repr":         b.repr,
		"console":      b.console(),
		"setTimeout":   b.setTimeout,
		"clearTimeout": b.clearTimeout,
	}
	for _, name := range globals {
		b.saved[name] = vm.Get(name)
		_ = vm.Set(name, values[name])
	}
	return b
}

// unbind restores whatever the names held before the turn and drops
// pending timers.
func (b *binding) unbind() {
	b.released = true
	b.timers.clear()
	for name, prev := range b.saved {
		if prev == nil {
			_ = b.vm.GlobalObject().Delete(name)
			continue
		}
		_ = b.vm.Set(name, prev)
	}
}

func (b *binding) text(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		if s, ok := a.Export().(string); ok {
			parts[i] = s
			continue
		}
		parts[i] = Repr(b.vm, a)
	}
	return strings.Join(parts, " ")
}

func (b *binding) write(call goja.FunctionCall) goja.Value {
	b.env.Write(call.Argument(0).String())
	return goja.Undefined()
}

func (b *binding) writeln(call goja.FunctionCall) goja.Value {
	b.env.Write(b.text(call.Arguments) + "\n")
	return goja.Undefined()
}

func (b *binding) repr(call goja.FunctionCall) goja.Value {
	return b.vm.ToValue(Repr(b.vm, call.Argument(0)))
}

func (b *binding) console() *goja.Object {
	c := b.vm.NewObject()
	log := func(call goja.FunctionCall) goja.Value {
		b.env.Log(b.text(call.Arguments))
		return goja.Undefined()
	}
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		_ = c.Set(name, log)
	}
	return c
}

func (b *binding) wait(call goja.FunctionCall) goja.Value {
	arg := call.Argument(0)
	var cond host.Condition
	switch {
	case goja.IsUndefined(arg) || goja.IsNull(arg):
		cond = host.Duration(0)
	case isNumber(arg):
		cond = host.Duration(millis(arg))
	default:
		fn, ok := goja.AssertFunction(arg)
		if !ok {
			panic(b.vm.NewTypeError("wait: %s: %s", host.ErrNotCallable, arg.String()))
		}
		cond = host.Until(func() (bool, error) {
			v, err := fn(goja.Undefined())
			if err != nil {
				if b.isAbort(err) {
					return true, nil
				}
				return false, b.scriptError(err)
			}
			return v.ToBoolean(), nil
		})
	}

	var hard time.Duration
	if h := call.Argument(1); isNumber(h) {
		hard = millis(h)
	}
	if err := b.env.Wait(cond, hard); err != nil {
		panic(b.vm.NewGoError(err))
	}
	return goja.Undefined()
}

func (b *binding) abort(call goja.FunctionCall) goja.Value {
	msg := ""
	if a := call.Argument(0); !goja.IsUndefined(a) && !goja.IsNull(a) {
		msg = a.String()
	}
	msg = b.env.Abort(msg)

	s := b.vm.NewObject()
	_ = s.Set("message", msg)
	_ = s.Set("toString", func(goja.FunctionCall) goja.Value {
		return b.vm.ToValue("Abort(" + msg + ")")
	})
	b.sentinels = append(b.sentinels, s)
	return s
}

func (b *binding) setTimeout(call goja.FunctionCall) goja.Value {
	fn, ok := goja.AssertFunction(call.Argument(0))
	if !ok {
		panic(b.vm.NewTypeError("setTimeout: callback is not a function"))
	}
	var delay time.Duration
	if d := call.Argument(1); isNumber(d) {
		delay = millis(d)
	}
	var args []goja.Value
	if len(call.Arguments) > 2 {
		args = append(args, call.Arguments[2:]...)
	}
	id := b.timers.add(b.h.cfg.Clock.Now().Add(delay), fn, args)
	return b.vm.ToValue(id)
}

func (b *binding) clearTimeout(call goja.FunctionCall) goja.Value {
	if id := call.Argument(0); isNumber(id) {
		b.timers.cancel(id.ToInteger())
	}
	return goja.Undefined()
}

// fire runs due timers. A timer that throws writes the error to the
// example's output, as an uncaught error in the example body would.
func (b *binding) fire(now time.Time) {
	for _, t := range b.timers.takeDue(now) {
		if b.released {
			return
		}
		if t.canceled {
			continue
		}
		if _, err := t.fn(goja.Undefined(), t.args...); err != nil && !b.isAbort(err) {
			b.report(b.scriptError(err))
		}
	}
}

// report writes an uncaught error to the example output and its stack to
// the console.
func (b *binding) report(err error) {
	b.env.Write("Error: " + err.Error() + "\n")
	var serr *host.ScriptError
	if errors.As(err, &serr) && serr.Stack != "" {
		fmt.Fprintln(b.env.Console(), serr.Stack)
	}
}

func (b *binding) isAbort(err error) bool {
	var ex *goja.Exception
	if !errors.As(err, &ex) {
		return false
	}
	return b.isSentinel(ex.Value())
}

// isSentinel reports whether v is a value returned by Abort in this turn.
func (b *binding) isSentinel(v goja.Value) bool {
	if v == nil {
		return false
	}
	for _, s := range b.sentinels {
		if v.SameAs(s) {
			return true
		}
	}
	return false
}

func (b *binding) scriptError(err error) error {
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return &host.ScriptError{Message: safeString(ex.Value()), Stack: ex.String(), Err: err}
	}
	var ie *goja.InterruptedError
	if errors.As(err, &ie) {
		cause, _ := ie.Value().(error)
		return &host.ScriptError{Message: fmt.Sprint(ie.Value()), Err: cause}
	}
	return err
}

func (b *binding) outcome(err error) host.Outcome {
	if b.isAbort(err) {
		return host.Aborted{Message: b.env.AbortMessage()}
	}
	return host.Threw{Err: b.scriptError(err)}
}

func isNumber(v goja.Value) bool {
	if v == nil {
		return false
	}
	switch v.Export().(type) {
	case int64, float64:
		return true
	}
	return false
}

func millis(v goja.Value) time.Duration {
	return time.Duration(v.ToFloat() * float64(time.Millisecond))
}

func safeString(v goja.Value) (s string) {
	defer func() {
		if recover() != nil {
			s = "[object]"
		}
	}()
	if v == nil {
		return "undefined"
	}
	return v.String()
}
