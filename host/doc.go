// Package host defines the contract between the doctest runner and the
// environment that executes example code.
//
// # Architecture
//
// A [Host] evaluates one example's code at a time. Before each evaluation the
// runner creates an [Env] bound to that example; the host exposes the Env's
// primitives to the code it runs:
//
//   - Write: append text to the example's captured output
//   - Log: record a console line and forward it to the real console
//   - Wait: ask the runner to suspend before judging the example
//   - Abort: end the whole session after this example
//
// When the runner is finished with the example it calls [Env.Release]. From
// then on the primitives no longer affect the example, and the host's
// release hooks undo any bindings it installed.
//
// # Outcomes
//
// Execute reports how evaluation ended as an [Outcome]: [Completed],
// [Threw], or [Aborted]. The runner never inspects thrown values to detect an
// abort; a host translates its own abort signal into [Aborted].
package host
