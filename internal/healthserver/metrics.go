package healthserver

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments the catalog engine updates.
var (
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "catalog",
		Name:      "refresh_duration_seconds",
		Help:      "Time spent rebuilding the catalog index from spec files.",
		Buckets:   prometheus.DefBuckets,
	})

	RefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "refresh_total",
		Help:      "Number of catalog refresh attempts, by outcome.",
	}, []string{"outcome"}) // "full", "skipped_unchanged", "error"

	SearchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "catalog",
		Name:      "search_duration_seconds",
		Help:      "Latency of api_search calls, by retrieval mode.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"mode"}) // "lexical", "hybrid"

	CacheLoad = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "catalog",
		Name:      "cache_load_total",
		Help:      "Startup cache sidecar reuse outcomes.",
	}, []string{"outcome"}) // "hit", "miss", "stale"
)

func init() {
	prometheus.MustRegister(RefreshDuration, RefreshTotal, SearchDuration, CacheLoad)
}
