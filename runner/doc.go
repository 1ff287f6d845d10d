// Package runner drives a doctest session.
//
// A [Runner] executes its examples strictly in order, one at a time. For each
// example it binds a fresh [host.Env], asks the [host.Host] to evaluate the
// code, and, if the code asked to wait, suspends the session and polls the
// wait condition on a fixed interval until it is satisfied or its deadline
// passes. The captured output is then judged by a [match.Matcher] and the
// verdict delivered to a [report.Reporter].
//
// # Session states
//
//	Idle ──Run──▶ Running ◀──resolve── Suspended
//	                 │  └──wait requested──▶┘
//	                 └──last example or abort──▶ Finished
//
// An abort requested by an example ends the session once that example has
// been judged. Later examples are marked skipped.
//
// # Waits
//
// A duration wait is judged once the duration has elapsed. Its deadline is
// the larger of the default timeout and the duration plus [WaitMargin],
// unless the example supplied its own timeout. A predicate wait is judged
// once the predicate returns true; its deadline is the example's timeout or
// the default. When a deadline passes, the notice
//
//	Error: wait timed out after N milliseconds
//
// is appended to the output before judging.
package runner
