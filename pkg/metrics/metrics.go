package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func outcome(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordResponseSize observes the body size of one response.
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

func (r *Registry) IncHTTPRequestsInFlight() { r.HTTPRequestsInFlight.Inc() }

func (r *Registry) DecHTTPRequestsInFlight() { r.HTTPRequestsInFlight.Dec() }

// RecordRejection counts a request refused by the concurrency limiter.
func (r *Registry) RecordRejection() { r.HTTPRequestsRejected.Inc() }

// RecordConversion records one pass through the conversion pipeline. Graph
// size is only observed for successful runs.
func (r *Registry) RecordConversion(duration time.Duration, nodes, edges, stations int, err error) {
	r.ConversionsTotal.WithLabelValues(outcome(err)).Inc()
	r.ConversionDuration.Observe(duration.Seconds())
	if err != nil {
		return
	}
	r.GraphNodesBuilt.Observe(float64(nodes))
	r.GraphEdgesBuilt.Observe(float64(edges))
	r.ChargingStations.Observe(float64(stations))
}

// RecordViolation counts one constraint violation.
func (r *Registry) RecordViolation(kind, severity string) {
	r.ConstraintViolation.WithLabelValues(kind, severity).Inc()
}

// RecordDistanceMatrix records an all-pairs computation.
func (r *Registry) RecordDistanceMatrix(algorithm string, nodes, unreachable int, duration time.Duration, err error) {
	r.DistanceMatrixComputation.WithLabelValues(algorithm, outcome(err)).Inc()
	if err != nil {
		return
	}
	r.DistanceMatrixDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
	r.DistanceMatrixNodes.Observe(float64(nodes))
	r.DistanceUnreachablePairs.Add(float64(unreachable))
}

// RecordFeasibility records an assessment's score and grade.
func (r *Registry) RecordFeasibility(score float64, grade string) {
	r.FeasibilityScore.Observe(score)
	r.FeasibilityGrades.WithLabelValues(grade).Inc()
	r.LastFeasibility.Set(score)
}

// RecordObjective records an objective evaluation.
func (r *Registry) RecordObjective(total float64, err error) {
	r.ObjectiveEvaluations.WithLabelValues(outcome(err)).Inc()
	if err == nil {
		r.ObjectiveTotal.Observe(total)
	}
}

// UpdateSystemMetrics refreshes uptime and Go runtime gauges.
func (r *Registry) UpdateSystemMetrics() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.UptimeSeconds.Set(time.Since(r.started).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.HeapAllocBytes.Set(float64(m.HeapAlloc))
	r.GCCycles.Set(float64(m.NumGC))
}

// Handler serves the registry in the Prometheus text format. System gauges
// are refreshed on every scrape.
func (r *Registry) Handler() http.Handler {
	inner := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.UpdateSystemMetrics()
		inner.ServeHTTP(w, req)
	})
}
