package middleware

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/logging"
)

// Logging writes one debug line per request, or a warning for 5xx
// responses.
func Logging(logger logging.Logger) Middleware {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)

			fields := []logging.Field{
				logging.String("method", r.Method),
				logging.Path(r.URL.Path),
				logging.Int("status", sw.statusCode),
				logging.Latency(time.Since(start)),
			}
			if id := GetRequestID(r); id != "" {
				fields = append(fields, logging.String("request_id", id))
			}
			if sw.statusCode >= http.StatusInternalServerError {
				logger.Warn("http request failed", fields...)
				return
			}
			logger.Debug("http request", fields...)
		})
	}
}
