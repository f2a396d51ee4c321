package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for person validation.
type Metrics struct {
	ValidationsTotal  *prometheus.CounterVec
	IssuesTotal       *prometheus.CounterVec
	IgnoredTotal      prometheus.Counter
	ValidationLatency *prometheus.HistogramVec
	DegradedTotal     *prometheus.CounterVec
}

// New registers and returns validation collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datencheck_validations_total",
			Help: "Total number of person validations, labeled by mode (interactive, stored)",
		}, []string{"mode"}),
		IssuesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datencheck_validation_issues_total",
			Help: "Issues returned by validations, labeled by code and severity",
		}, []string{"code", "severity"}),
		IgnoredTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_validation_issues_ignored_total",
			Help: "Issues removed by ignore decisions",
		}),
		ValidationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datencheck_validation_latency_seconds",
			Help:    "Latency of person validations including graph reads",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"mode"}),
		DegradedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "datencheck_validation_degraded_total",
			Help: "Validations that skipped input because a dependency failed, labeled by dependency",
		}, []string{"dependency"}),
	}
}

// ObserveValidation records one finished validation.
func (m *Metrics) ObserveValidation(mode string, durationSeconds float64, ignored int) {
	m.ValidationsTotal.WithLabelValues(mode).Inc()
	m.ValidationLatency.WithLabelValues(mode).Observe(durationSeconds)
	if ignored > 0 {
		m.IgnoredTotal.Add(float64(ignored))
	}
}

func (m *Metrics) IncIssue(code, severity string) {
	m.IssuesTotal.WithLabelValues(code, severity).Inc()
}

func (m *Metrics) IncDegraded(dependency string) {
	m.DegradedTotal.WithLabelValues(dependency).Inc()
}
