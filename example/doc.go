// Package example defines the unit of work for a doctest session: a code
// fragment paired with the output it is expected to produce.
//
// An [Example] is created by a parser (see package parse) or directly with
// [New], executed by the runner, and judged by a matcher. While it runs, the
// host appends to its captured output and console buffers; the runner then
// records a final [Status].
//
// Examples are not safe for concurrent mutation. A session executes one
// example at a time, so no locking is done here.
package example
