package health

import (
	"sync"
	"time"
)

// Status is the outcome of a check. Degraded answers 200 on /health but
// 503 on the readiness and liveness probes.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Probe selects which endpoints run a check. Values combine with |.
type Probe uint8

const (
	ProbeHealth Probe = 1 << iota
	ProbeReady
	ProbeLive
)

// Check is one component's result.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ns"`
	// Cached marks a result reused from an earlier run; see Cached.
	Cached bool `json:"cached,omitempty"`
}

type CheckFunc func() Check

type registration struct {
	fn     CheckFunc
	probes Probe
}

// HealthChecker runs the registered checks for the conversion service.
type HealthChecker struct {
	mu      sync.RWMutex
	checks  map[string]registration
	started time.Time
}

// Response is the body of every health endpoint.
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    float64          `json:"uptime_seconds"`
}
