package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonwraymond/doctest/example"
	"github.com/jonwraymond/doctest/match"
)

// MetricsNamespace prefixes every metric name.
const MetricsNamespace = "doctest"

// Metrics is a Reporter that exports session results to Prometheus.
type Metrics struct {
	examples        *prometheus.CounterVec
	aborts          prometheus.Counter
	sessions        *prometheus.CounterVec
	sessionDuration prometheus.Gauge
	lastExamples    *prometheus.GaugeVec
}

// NewMetrics creates a Metrics reporter and registers its collectors with
// reg. It panics if the collectors are already registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		examples: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "examples_total",
			Help:      "Count of judged examples by result",
		}, []string{"result"}),
		aborts: f.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "aborts_total",
			Help:      "Count of sessions ended by an abort",
		}),
		sessions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "sessions_total",
			Help:      "Count of finished sessions by outcome",
		}, []string{"outcome"}),
		sessionDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_session_duration_seconds",
			Help:      "Duration of the most recent session",
		}),
		lastExamples: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "last_session_examples",
			Help:      "Examples in the most recent session by status",
		}, []string{"status"}),
	}
}

// OnSuccess implements Reporter.
func (m *Metrics) OnSuccess(*example.Example, string) {
	m.examples.WithLabelValues("pass").Inc()
}

// OnFailure implements Reporter.
func (m *Metrics) OnFailure(ex *example.Example, _ string, _ *match.Table) {
	if ex.Status == example.StatusTimedOut {
		m.examples.WithLabelValues("timeout").Inc()
		return
	}
	m.examples.WithLabelValues("fail").Inc()
}

// OnAbort implements Reporter.
func (m *Metrics) OnAbort(*example.Example, string) {
	m.aborts.Inc()
}

// OnFinish implements Reporter.
func (m *Metrics) OnFinish(s *Summary) {
	m.sessionDuration.Set(s.Duration.Seconds())
	m.lastExamples.WithLabelValues(example.StatusPassed.String()).Set(float64(s.Passed))
	m.lastExamples.WithLabelValues(example.StatusFailed.String()).Set(float64(s.Failed))
	m.lastExamples.WithLabelValues(example.StatusTimedOut.String()).Set(float64(s.TimedOut))
	m.lastExamples.WithLabelValues(example.StatusSkipped.String()).Set(float64(s.Skipped))
	m.sessions.WithLabelValues(outcome(s)).Inc()
}

func outcome(s *Summary) string {
	switch {
	case s.Canceled:
		return "canceled"
	case s.Aborted():
		return "aborted"
	case s.OK():
		return "ok"
	}
	return "failed"
}
