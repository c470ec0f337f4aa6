package health

import (
	"time"
)

// NewHealthChecker returns a checker with no checks; every probe reports
// healthy until something is registered.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks:  make(map[string]registration),
		started: time.Now(),
	}
}

// Register adds fn under name for the given probes. Registering a name
// again replaces its function and adds the new probes to the old ones.
func (hc *HealthChecker) Register(name string, fn CheckFunc, probes Probe) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	reg := hc.checks[name]
	reg.fn = fn
	reg.probes |= probes
	hc.checks[name] = reg
}

func (hc *HealthChecker) RegisterCheck(name string, check CheckFunc) {
	hc.Register(name, check, ProbeHealth)
}

func (hc *HealthChecker) RegisterReadinessCheck(name string, check CheckFunc) {
	hc.Register(name, check, ProbeReady)
}

func (hc *HealthChecker) RegisterLivenessCheck(name string, check CheckFunc) {
	hc.Register(name, check, ProbeLive)
}

// Names lists the checks that run for probe, in no particular order.
func (hc *HealthChecker) Names(probe Probe) []string {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	var names []string
	for name, reg := range hc.checks {
		if reg.probes&probe != 0 {
			names = append(names, name)
		}
	}
	return names
}

// Check runs the /health checks.
func (hc *HealthChecker) Check() Response {
	return hc.performChecks(hc.selectFor(ProbeHealth))
}

func (hc *HealthChecker) CheckReadiness() Response {
	return hc.performChecks(hc.selectFor(ProbeReady))
}

func (hc *HealthChecker) CheckLiveness() Response {
	return hc.performChecks(hc.selectFor(ProbeLive))
}

// selectFor copies the matching checks so they run without holding the
// lock; a self-test conversion can take a while.
func (hc *HealthChecker) selectFor(probe Probe) map[string]CheckFunc {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	out := make(map[string]CheckFunc)
	for name, reg := range hc.checks {
		if reg.probes&probe != 0 {
			out[name] = reg.fn
		}
	}
	return out
}

func (hc *HealthChecker) performChecks(checksMap map[string]CheckFunc) Response {
	now := time.Now()
	response := Response{
		Status:    StatusHealthy,
		Timestamp: now,
		Checks:    make(map[string]Check, len(checksMap)),
		Uptime:    now.Sub(hc.started).Seconds(),
	}

	for name, checkFunc := range checksMap {
		start := time.Now()
		check := checkFunc()
		if !check.Cached {
			check.Duration = time.Since(start)
			check.LastChecked = start
		}
		if check.Name == "" {
			check.Name = name
		}

		response.Checks[name] = check
		response.Status = worst(response.Status, check.Status)
	}

	return response
}

func worst(a, b Status) Status {
	rank := func(s Status) int {
		switch s {
		case StatusUnhealthy:
			return 2
		case StatusDegraded:
			return 1
		default:
			return 0
		}
	}
	if rank(b) > rank(a) {
		return b
	}
	return a
}
