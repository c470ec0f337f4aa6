package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDistanceMetrics() {
	r.DistanceMatrixDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retrofit_distance_matrix_duration_seconds",
			Help:    "All-pairs shortest path computation time in seconds",
			Buckets: []float64{.0001, .001, .01, .1, 1, 10, 60},
		},
		[]string{"algorithm"},
	)

	r.DistanceMatrixNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_distance_matrix_nodes",
			Help:    "Node count of computed distance matrices",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		},
	)

	r.DistanceUnreachablePairs = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "retrofit_distance_unreachable_pairs_total",
			Help: "Ordered node pairs with no connecting path",
		},
	)

	r.DistanceMatrixComputation = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrofit_distance_matrix_computations_total",
			Help: "Distance matrix computations by algorithm and outcome",
		},
		[]string{"algorithm", "status"},
	)
}
