package middleware

import (
	"net/http"
	"sync/atomic"
)

// Limiter bounds how many requests run at once. Requests over the bound
// are refused with 503 rather than queued.
type Limiter struct {
	slots    chan struct{}
	inFlight atomic.Int64
	rejected atomic.Int64
	onReject func()
}

// NewLimiter allows up to n concurrent requests; n < 1 means 1.
func NewLimiter(n int) *Limiter {
	if n < 1 {
		n = 1
	}
	return &Limiter{slots: make(chan struct{}, n)}
}

// Limit is the configured bound.
func (l *Limiter) Limit() int { return cap(l.slots) }

// InFlight is the number of requests currently admitted.
func (l *Limiter) InFlight() int { return int(l.inFlight.Load()) }

// Rejected counts requests refused since start.
func (l *Limiter) Rejected() int64 { return l.rejected.Load() }

// OnReject registers fn to run for every refused request. Call it before
// serving.
func (l *Limiter) OnReject(fn func()) { l.onReject = fn }

// Middleware admits a request when a slot is free.
func (l *Limiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case l.slots <- struct{}{}:
			default:
				l.rejected.Add(1)
				if l.onReject != nil {
					l.onReject()
				}
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Server busy", http.StatusServiceUnavailable)
				return
			}
			l.inFlight.Add(1)
			defer func() {
				l.inFlight.Add(-1)
				<-l.slots
			}()
			next.ServeHTTP(w, r)
		})
	}
}
