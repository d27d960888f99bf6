// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_cycles_total",
		Help: "Refresh cycles started",
	})
	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_cycle_duration_seconds",
		Help:    "Wall time of one full refresh cycle",
		Buckets: prometheus.DefBuckets,
	})
	EntitiesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_entities_processed_total",
		Help: "Entities processed by the progressive loader",
	})
	BatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_batches_total",
		Help: "Loader batches completed",
	})
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_fetch_failures_total",
		Help: "Per-symbol, per-timeframe fetch failures (non-fatal)",
	})
	StaleResultsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_stale_results_dropped_total",
		Help: "Loader results discarded because their generation was superseded",
	})
	OutageWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_outage_warnings_total",
		Help: "Cycles that ended in a total upstream outage",
	})
	AlertsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_alerts_sent_total",
		Help: "High-confidence setup alerts dispatched",
	})
)

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
