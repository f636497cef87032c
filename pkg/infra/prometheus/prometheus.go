package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds; moderation is CPU-bound and fast,
	// risk/stats calls include store round trips.
	latencyBuckets = []float64{
		1, 2, 5,
		10, 25, 50,
		100, 250, 500,
		1000, 2500,
	}

	ModerationTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentra_moderation_total",
			Help: "Total number of moderation decisions",
		},
		[]string{"decision"},
	)

	CategoryHits = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentra_category_hits_total",
			Help: "Detections per category",
		},
		[]string{"category"},
	)

	ModerationLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentra_latency_ms",
			Help:    "Operation latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"operation"},
	)

	RiskProfilesTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentra_risk_profiles_total",
			Help: "Risk profiles computed per resulting level",
		},
		[]string{"level"},
	)

	StatsSnapshotsTotal = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "sentra_stats_snapshots_total",
			Help: "Moderation stats snapshots computed",
		},
	)
)

// Registry exposes the private registry for the metrics endpoint.
func Registry() *prometheus.Registry {
	return registry
}
