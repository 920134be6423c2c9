// Package metrics exposes prometheus collectors for the index server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lattice_queries_total",
		Help: "Graph queries served, by operation.",
	}, []string{"operation"})

	queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lattice_query_duration_seconds",
		Help:    "Graph query latency, by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	cacheHits = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lattice_cache_hits",
		Help: "Result cache hits since the last rebuild, by cache.",
	}, []string{"cache"})

	cacheMisses = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lattice_cache_misses",
		Help: "Result cache misses since the last rebuild, by cache.",
	}, []string{"cache"})

	cacheEvictions = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lattice_cache_evictions",
		Help: "Result cache evictions since the last rebuild, by cache.",
	}, []string{"cache"})

	indexSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "lattice_index_size",
		Help: "Current index contents, by element kind.",
	}, []string{"kind"})
)

// ObserveQuery records one served query and its latency.
func ObserveQuery(operation string, start time.Time) {
	queriesTotal.WithLabelValues(operation).Inc()
	queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// SetCacheStats publishes counters for one result cache.
func SetCacheStats(cache string, hits, misses, evictions int64) {
	cacheHits.WithLabelValues(cache).Set(float64(hits))
	cacheMisses.WithLabelValues(cache).Set(float64(misses))
	cacheEvictions.WithLabelValues(cache).Set(float64(evictions))
}

// SetIndexSize publishes the current element counts of the index.
func SetIndexSize(nodes, edges, communities int) {
	indexSize.WithLabelValues("nodes").Set(float64(nodes))
	indexSize.WithLabelValues("edges").Set(float64(edges))
	indexSize.WithLabelValues("communities").Set(float64(communities))
}
