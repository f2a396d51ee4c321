package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for batch scans.
type Metrics struct {
	PersonsScanned    prometheus.Counter
	PersonsWithIssues prometheus.Counter
	PersonsFailed     prometheus.Counter
	PageLatency       prometheus.Histogram
}

// New registers and returns scan collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PersonsScanned: factory.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_scan_persons_total",
			Help: "Persons validated by batch scans",
		}),
		PersonsWithIssues: factory.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_scan_persons_with_issues_total",
			Help: "Persons with at least one issue found by batch scans",
		}),
		PersonsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_scan_persons_failed_total",
			Help: "Persons skipped by batch scans because validation failed",
		}),
		PageLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "datencheck_scan_page_latency_seconds",
			Help:    "Time to validate one page of persons",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

func (m *Metrics) ObservePage(durationSeconds float64, scanned, withIssues, failed int) {
	m.PageLatency.Observe(durationSeconds)
	m.PersonsScanned.Add(float64(scanned))
	m.PersonsWithIssues.Add(float64(withIssues))
	m.PersonsFailed.Add(float64(failed))
}
