package api

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/api/middleware"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/health"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/metrics"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server exposes the conversion pipeline over HTTP.
type Server struct {
	cfg             Config
	converter       atomic.Pointer[converter.Converter]
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	healthChecker   *health.HealthChecker
	limiter         *middleware.Limiter
	handler         http.Handler
	startTime       time.Time
}
