package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the ignored-issue store.
type Metrics struct {
	OperationLatency *prometheus.HistogramVec
	OperationErrors  *prometheus.CounterVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CircuitOpen      prometheus.Gauge
}

// New registers and returns ignored-issue collectors.
func New() *Metrics {
	return &Metrics{
		OperationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datencheck_ignored_store_latency_seconds",
			Help:    "Latency of ignored-issue store operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"op"}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "datencheck_ignored_store_errors_total",
			Help: "Failed ignored-issue store operations, labeled by operation",
		}, []string{"op"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_ignored_cache_hits_total",
			Help: "Ignored-code lookups answered from Redis",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "datencheck_ignored_cache_misses_total",
			Help: "Ignored-code lookups that fell through to the backing store",
		}),
		CircuitOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "datencheck_ignored_store_circuit_open",
			Help: "1 while the ignored-issue store circuit breaker is open",
		}),
	}
}

func (m *Metrics) ObserveOperation(op string, durationSeconds float64, err error) {
	m.OperationLatency.WithLabelValues(op).Observe(durationSeconds)
	if err != nil {
		m.OperationErrors.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if open {
		m.CircuitOpen.Set(1)
		return
	}
	m.CircuitOpen.Set(0)
}
