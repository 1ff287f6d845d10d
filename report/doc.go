// Package report delivers the verdicts of a doctest session.
//
// A [Reporter] receives one call per judged example and a final
// [Reporter.OnFinish] with the session [Summary]. Implementations:
//
//   - [Text]: human-readable output for terminals and logs
//   - [Metrics]: Prometheus counters and gauges
//   - [Recorder]: keeps every event in memory, for tests and tools
//   - [Multi]: fans events out to several reporters
package report
