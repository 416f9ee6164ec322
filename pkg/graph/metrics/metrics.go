package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_runs_total",
			Help: "Total number of extraction runs by terminal state",
		},
		[]string{"state"},
	)

	SegmentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_segments_processed_total",
			Help: "Number of segments pushed through the pipeline",
		},
		[]string{"status"},
	)

	ModelCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graph_model_call_duration_seconds",
			Help:    "Time spent waiting for the language model per segment",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
		},
		[]string{"outcome"},
	)

	// Aggregation metrics
	TriplesAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "graph_triples_accepted_total",
		Help: "Number of triples added to a graph",
	})

	TriplesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_triples_skipped_total",
			Help: "Number of parsed triples rejected by the aggregator",
		},
		[]string{"reason"},
	)

	// Graph metrics
	GraphNodeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "graph_nodes",
		Help: "Number of unique nodes in the most recent run",
	})

	GraphEdgeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "graph_edges",
		Help: "Number of edges in the most recent run",
	})

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Number of cache misses",
		},
		[]string{"cache_type"},
	)
)
