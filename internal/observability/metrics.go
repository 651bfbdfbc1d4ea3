package observability

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for the aggregation pipeline.
type Metrics struct {
	SourceFetches  *prometheus.CounterVec // labels: source, outcome={ok,empty,timeout,error}
	CacheReads     *prometheus.CounterVec // labels: result={fresh,refresh,stale_served,empty}
	PassDuration   prometheus.Histogram
	ArticlesServed prometheus.Histogram
	ClaudeCalls    *prometheus.CounterVec // labels: outcome={ok,empty,error,disabled}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.SourceFetches,
		m.CacheReads,
		m.PassDuration,
		m.ArticlesServed,
		m.ClaudeCalls,
	)
	return m
}

// NewUnregistered creates the metrics without touching the default registry,
// for tests that build multiple instances.
func NewUnregistered() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefnews",
			Name:      "source_fetches_total",
			Help:      "Feed fetch attempts by source and outcome.",
		}, []string{"source", "outcome"}),
		CacheReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefnews",
			Name:      "cache_reads_total",
			Help:      "News reads by cache result.",
		}, []string{"result"}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reliefnews",
			Name:      "aggregation_pass_duration_seconds",
			Help:      "Duration of a full aggregation pass.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}),
		ArticlesServed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "reliefnews",
			Name:      "articles_served",
			Help:      "Number of articles returned per news request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		ClaudeCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reliefnews",
			Name:      "claude_calls_total",
			Help:      "Claude retrieval calls by outcome.",
		}, []string{"outcome"}),
	}
}
