package health

import (
	"encoding/json"
	"net/http"
)

func writeResponse(w http.ResponseWriter, response Response, degradedOK bool) {
	w.Header().Set("Content-Type", "application/json")

	status := http.StatusOK
	switch response.Status {
	case StatusUnhealthy:
		status = http.StatusServiceUnavailable
	case StatusDegraded:
		if !degradedOK {
			status = http.StatusServiceUnavailable
		}
	}
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(response)
}

// HTTPHandler returns an HTTP handler for the health check endpoint.
// Degraded still answers 200.
func (hc *HealthChecker) HTTPHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.Check(), true)
	}
}

// ReadinessHandler returns an HTTP handler for readiness checks
func (hc *HealthChecker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.CheckReadiness(), false)
	}
}

// LivenessHandler returns an HTTP handler for liveness checks
func (hc *HealthChecker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, hc.CheckLiveness(), false)
	}
}
