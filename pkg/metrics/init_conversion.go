package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initConversionMetrics() {
	r.ConversionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrofit_conversions_total",
			Help: "Warehouse conversions by outcome",
		},
		[]string{"status"},
	)

	r.ConversionDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_conversion_duration_seconds",
			Help:    "End-to-end conversion latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
	)

	r.GraphNodesBuilt = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_graph_nodes_built",
			Help:    "Navigation graph size in nodes per conversion",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		},
	)

	r.GraphEdgesBuilt = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_graph_edges_built",
			Help:    "Navigation graph size in edges per conversion",
			Buckets: prometheus.ExponentialBuckets(8, 2, 12),
		},
	)

	r.ChargingStations = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_charging_stations_placed",
			Help:    "Charging stations placed per conversion",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	r.ConstraintViolation = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrofit_constraint_violations_total",
			Help: "Physical constraint violations found during conversion",
		},
		[]string{"type", "severity"},
	)
}
