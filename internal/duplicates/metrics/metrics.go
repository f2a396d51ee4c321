package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for duplicate searches.
type Metrics struct {
	Searches           *prometheus.CounterVec
	CandidatesReturned *prometheus.HistogramVec
	SearchLatency      *prometheus.HistogramVec
	PhoneticCacheSize  prometheus.Gauge
}

// New registers and returns duplicate search collectors.
func New() *Metrics {
	return &Metrics{
		Searches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "datencheck_duplicate_searches_total",
			Help: "Total number of duplicate searches, labeled by kind",
		}, []string{"kind"}),
		CandidatesReturned: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datencheck_duplicate_candidates_returned",
			Help:    "Distribution of candidates returned per search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
		}, []string{"kind"}),
		SearchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "datencheck_duplicate_search_latency_seconds",
			Help:    "Latency of duplicate searches in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
		}, []string{"kind"}),
		PhoneticCacheSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "datencheck_phonetic_cache_entries",
			Help: "Number of memoized phonetic codes",
		}),
	}
}

// ObserveSearch records one finished search.
func (m *Metrics) ObserveSearch(kind string, results int, durationSeconds float64) {
	m.Searches.WithLabelValues(kind).Inc()
	m.CandidatesReturned.WithLabelValues(kind).Observe(float64(results))
	m.SearchLatency.WithLabelValues(kind).Observe(durationSeconds)
}

func (m *Metrics) SetPhoneticCacheSize(n int) {
	m.PhoneticCacheSize.Set(float64(n))
}
