// Package metrics defines the Prometheus metric collectors used by the
// search engine and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	SearchesTotal      *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram
	CandidatesCount    prometheus.Histogram
	SuggestionsTotal   prometheus.Counter
	RefreshesTotal     *prometheus.CounterVec
	RefreshDuration    prometheus.Histogram
	IndexedArticles    prometheus.Gauge
	IndexTokens        prometheus.Gauge
	CorpusCacheHits    prometheus.Counter
	CorpusCacheMisses  prometheus.Counter
}

// New creates all collectors and registers them with the given registerer.
// Passing nil registers against the default prometheus registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		SearchesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_queries_total",
				Help: "Total search queries by outcome (hit, zero_result, too_short, error).",
			},
			[]string{"outcome"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
			},
		),
		SearchResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search query.",
				Buckets: []float64{0, 1, 5, 10, 20},
			},
		),
		CandidatesCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "search_candidates_count",
				Help:    "Number of candidate articles selected per query before scoring.",
				Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500},
			},
		),
		SuggestionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "suggestion_requests_total",
				Help: "Total autocomplete suggestion requests.",
			},
		),
		RefreshesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "index_refreshes_total",
				Help: "Total index rebuild operations by status.",
			},
			[]string{"status"},
		),
		RefreshDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "index_refresh_duration_seconds",
				Help:    "Time spent fetching the corpus and rebuilding the index.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
		IndexedArticles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "indexed_articles",
				Help: "Number of articles in the current index snapshot.",
			},
		),
		IndexTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "index_tokens",
				Help: "Number of distinct tokens in the current index snapshot.",
			},
		),
		CorpusCacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "corpus_cache_hits_total",
				Help: "Total corpus fetches served from the Redis cache.",
			},
		),
		CorpusCacheMisses: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "corpus_cache_misses_total",
				Help: "Total corpus fetches that fell through to the origin source.",
			},
		),
	}

	reg.MustRegister(
		m.SearchesTotal,
		m.SearchLatency,
		m.SearchResultsCount,
		m.CandidatesCount,
		m.SuggestionsTotal,
		m.RefreshesTotal,
		m.RefreshDuration,
		m.IndexedArticles,
		m.IndexTokens,
		m.CorpusCacheHits,
		m.CorpusCacheMisses,
	)

	return m
}

// Handler returns the Prometheus scrape HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
