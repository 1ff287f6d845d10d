// Package match decides whether captured output satisfies an expectation.
//
// Both sides are normalized by [Clean] before comparison: every line is
// trimmed and blank lines are dropped. The expectation is then compiled into
// an anchored regular expression where
//
//   - "..." matches any run of characters, including newlines
//   - "?" matches one or more letters, digits, underscores, or dots
//   - runs of spaces and tabs match one or more spaces or tabs
//   - single and double quotes match each other
//
// Everything else is literal. When a multi-line comparison fails, [BuildTable]
// produces a line-by-line breakdown to help locate the mismatch.
package match
