// Package middleware holds the HTTP middleware used by the retrofit API
// server.
//
//   - recovery.go: panic recovery
//   - request_id.go: request id propagation
//   - logging.go: structured request logging
//   - metrics.go: Prometheus request metrics
//   - body_limit.go: request body size limit
//   - concurrency.go: bound on requests running the pipeline at once
//   - cors.go: Cross-Origin Resource Sharing
//
// Every middleware has the shape func(http.Handler) http.Handler and is
// combined with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.PanicRecovery(logger),
//		middleware.RequestID(),
//		middleware.Logging(logger),
//	)
package middleware

import "net/http"

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
