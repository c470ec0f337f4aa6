package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec
	HTTPRequestsRejected  prometheus.Counter

	// Conversion Metrics
	ConversionsTotal    *prometheus.CounterVec
	ConversionDuration  prometheus.Histogram
	GraphNodesBuilt     prometheus.Histogram
	GraphEdgesBuilt     prometheus.Histogram
	ChargingStations    prometheus.Histogram
	ConstraintViolation *prometheus.CounterVec

	// Distance Matrix Metrics
	DistanceMatrixDuration    *prometheus.HistogramVec
	DistanceMatrixNodes       prometheus.Histogram
	DistanceUnreachablePairs  prometheus.Counter
	DistanceMatrixComputation *prometheus.CounterVec

	// Feasibility Metrics
	FeasibilityScore  prometheus.Histogram
	FeasibilityGrades *prometheus.CounterVec
	LastFeasibility   prometheus.Gauge

	// Objective Metrics
	ObjectiveEvaluations *prometheus.CounterVec
	ObjectiveTotal       prometheus.Histogram

	// System Metrics
	UptimeSeconds  prometheus.Gauge
	GoRoutines     prometheus.Gauge
	HeapAllocBytes prometheus.Gauge
	GCCycles       prometheus.Gauge

	registry *prometheus.Registry
	started  time.Time
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}

	r.initServiceMetrics()
	r.initConversionMetrics()
	r.initDistanceMetrics()
	r.initFeasibilityMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
