package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initFeasibilityMetrics() {
	r.FeasibilityScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_feasibility_score",
			Help:    "Feasibility scores on the 0-10 scale",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		},
	)

	r.FeasibilityGrades = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrofit_feasibility_grades_total",
			Help: "Feasibility assessments by letter grade",
		},
		[]string{"grade"},
	)

	r.LastFeasibility = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "retrofit_feasibility_last_score",
			Help: "Score of the most recent feasibility assessment",
		},
	)

	r.ObjectiveEvaluations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "retrofit_objective_evaluations_total",
			Help: "Objective function evaluations by outcome",
		},
		[]string{"status"},
	)

	r.ObjectiveTotal = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "retrofit_objective_total",
			Help:    "Weighted objective totals",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		},
	)
}
