package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conversions of large layouts take seconds, so latency buckets run past
// the Prometheus defaults.
var requestBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

func (r *Registry) initServiceMetrics() {
	f := promauto.With(r.registry)

	r.HTTPRequestsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "retrofit_http_requests_total",
		Help: "HTTP requests by route pattern and status code",
	}, []string{"method", "path", "status"})
	r.HTTPRequestDuration = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retrofit_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: requestBuckets,
	}, []string{"method", "path"})
	r.HTTPResponseSizeBytes = f.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "retrofit_http_response_size_bytes",
		Help:    "Response body size; distance matrices dominate the upper buckets",
		Buckets: prometheus.ExponentialBuckets(256, 4, 8),
	}, []string{"method", "path"})
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Name: "retrofit_http_requests_in_flight",
		Help: "Requests currently being served",
	})
	r.HTTPRequestsRejected = f.NewCounter(prometheus.CounterOpts{
		Name: "retrofit_http_requests_rejected_total",
		Help: "Pipeline requests refused because every concurrency slot was taken",
	})

	r.UptimeSeconds = f.NewGauge(prometheus.GaugeOpts{
		Name: "retrofit_uptime_seconds",
		Help: "Seconds since the registry was created",
	})
	r.GoRoutines = f.NewGauge(prometheus.GaugeOpts{
		Name: "retrofit_goroutines",
		Help: "Live goroutines",
	})
	r.HeapAllocBytes = f.NewGauge(prometheus.GaugeOpts{
		Name: "retrofit_heap_alloc_bytes",
		Help: "Bytes of allocated heap objects; distance matrices grow with the square of the node count",
	})
	r.GCCycles = f.NewGauge(prometheus.GaugeOpts{
		Name: "retrofit_gc_cycles",
		Help: "Completed garbage collection cycles",
	})
}
