package health

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) Check {
	return Check{
		Name:        name,
		Status:      StatusHealthy,
		LastChecked: time.Now(),
	}
}

// PipelineCheck runs a conversion end to end, typically on the built-in
// reference layout. An error makes the service unhealthy; a result outside
// the expected grade set makes it degraded.
func PipelineCheck(run func() (grade string, err error), expected ...string) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "pipeline",
			Details: make(map[string]any),
		}

		grade, err := run()
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		check.Details["grade"] = grade

		if len(expected) > 0 && !slices.Contains(expected, grade) {
			check.Status = StatusDegraded
			check.Message = fmt.Sprintf("Reference layout graded %s, expected one of %v", grade, expected)
			return check
		}
		check.Status = StatusHealthy
		check.Message = "Reference conversion succeeded"
		return check
	}
}

// ConfigCheck reports advisory configuration warnings as degraded.
func ConfigCheck(warnings func() []string) CheckFunc {
	return func() Check {
		check := Check{Name: "config"}
		w := warnings()
		if len(w) == 0 {
			check.Status = StatusHealthy
			check.Message = "Configuration within recommended ranges"
			return check
		}
		check.Status = StatusDegraded
		check.Message = fmt.Sprintf("%d configuration warning(s)", len(w))
		check.Details = map[string]any{"warnings": w}
		return check
	}
}

// CapacityCheck reports how many conversions are in flight against the
// server's concurrency limit.
func CapacityCheck(inFlight func() int, limit int) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "capacity",
			Details: make(map[string]any),
		}

		n := inFlight()
		check.Details["in_flight"] = n
		check.Details["limit"] = limit

		switch {
		case limit <= 0:
			check.Status = StatusHealthy
			check.Message = "Unlimited"
		case n >= limit:
			check.Status = StatusDegraded
			check.Message = "All conversion slots busy"
		default:
			check.Status = StatusHealthy
			check.Message = "Conversion slots available"
		}
		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys > 0 && float64(alloc)/float64(sys) > 0.9 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

// Cached reuses the last result of fn for ttl. Concurrent probes wait for
// a single run. Unhealthy results are never reused, so recovery shows on
// the next probe.
func Cached(fn CheckFunc, ttl time.Duration) CheckFunc {
	var (
		mu   sync.Mutex
		last Check
		at   time.Time
	)
	return func() Check {
		mu.Lock()
		defer mu.Unlock()
		if !at.IsZero() && time.Since(at) < ttl {
			c := last
			c.Cached = true
			return c
		}

		start := time.Now()
		c := fn()
		c.LastChecked = start
		c.Duration = time.Since(start)
		if c.Status == StatusUnhealthy {
			at = time.Time{}
		} else {
			last, at = c, start
		}
		return c
	}
}
