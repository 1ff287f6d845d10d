// Package js runs doctest examples written in JavaScript on the goja
// runtime.
//
// # Globals
//
// While an example runs, the following names are in scope:
//
//   - write(text): append text to the output as is
//   - print(...args), writeln(...args): append the arguments joined by
//     spaces, followed by a newline; non-strings are rendered with repr
//   - wait(ms | predicate, [timeoutMs]): judge the example only after ms
//     milliseconds, or once predicate() returns true
//   - Abort([message]): end the session after this example; the returned
//     value may be thrown to stop the example immediately
//   - repr(value): the rendering used by print
//   - console.log/info/warn/error/debug: forwarded to the real console
//   - setTimeout/clearTimeout: timers fired while the example waits
//
// The names are removed again when the runner releases the example, so late
// callbacks cannot write into a later example's output.
//
// # Modes
//
// In [ModeShared] all examples run in one runtime and share top-level
// bindings, the way scripts on a web page do. In [ModeIsolated] every
// example gets a fresh runtime.
package js
