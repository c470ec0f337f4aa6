// Package api serves the retrofit pipeline over HTTP: layout conversion,
// feasibility scoring, distance matrices and schedule evaluation, plus
// health and Prometheus endpoints.
package api

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/api/middleware"
	"github.com/dd0wney/cluso-retrofit/pkg/config"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/feasibility"
	"github.com/dd0wney/cluso-retrofit/pkg/health"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/navgraph"
)

// healthCheckTimeout bounds the reference conversion run by /health.
const healthCheckTimeout = 5 * time.Second

// pipelineCacheTTL spaces out reference conversions under frequent probes.
const pipelineCacheTTL = 15 * time.Second

// New builds a server and its routes.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()
	opts := cfg.Converter
	opts.Logger = cfg.Logger
	opts.Metrics = cfg.Metrics

	s := &Server{
		cfg:             cfg,
		logger:          cfg.Logger.With(logging.Component("api")),
		metricsRegistry: cfg.Metrics,
		healthChecker:   health.NewHealthChecker(),
		limiter:         middleware.NewLimiter(cfg.MaxConcurrent),
		startTime:       time.Now(),
	}
	s.limiter.OnReject(cfg.Metrics.RecordRejection)
	s.converter.Store(converter.New(opts))
	s.registerHealthChecks()
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("GET /health/live", s.healthChecker.LivenessHandler())
	mux.HandleFunc("GET /health/ready", s.healthChecker.ReadinessHandler())
	mux.Handle("GET /metrics", s.metricsRegistry.Handler())
	mux.HandleFunc("GET /api/v1/layouts/reference", s.handleReferenceLayout)

	// Pipeline routes share the concurrency bound.
	limit := s.limiter.Middleware()
	mux.Handle("POST /api/v1/convert", limit(http.HandlerFunc(s.handleConvert)))
	mux.Handle("POST /api/v1/feasibility", limit(http.HandlerFunc(s.handleFeasibility)))
	mux.Handle("POST /api/v1/distance-matrix", limit(http.HandlerFunc(s.handleDistanceMatrix)))
	mux.Handle("POST /api/v1/objective", limit(http.HandlerFunc(s.handleObjective)))

	// Metrics sits directly on the mux so the matched pattern labels the request.
	return middleware.Chain(mux,
		middleware.PanicRecovery(s.logger),
		middleware.RequestID(),
		middleware.Logging(s.logger),
		middleware.CORS(s.cfg.CORS),
		middleware.BodySizeLimit(s.cfg.MaxBodyBytes),
		middleware.Metrics(s.metricsRegistry),
	)
}

func (s *Server) registerHealthChecks() {
	s.healthChecker.RegisterLivenessCheck("process", func() health.Check {
		return health.SimpleCheck("process")
	})
	pipeline := health.PipelineCheck(s.referenceGrade, string(feasibility.GradeA), string(feasibility.GradeB))
	s.healthChecker.Register("pipeline", health.Cached(pipeline, pipelineCacheTTL), health.ProbeHealth|health.ProbeReady)
	s.healthChecker.RegisterCheck("config", health.ConfigCheck(func() []string {
		return s.current().Options().Config.Validate()
	}))
	s.healthChecker.RegisterCheck("capacity", health.CapacityCheck(s.limiter.InFlight, s.limiter.Limit()))
	s.healthChecker.RegisterCheck("memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))
}

// referenceGrade converts the built-in reference layout end to end.
func (s *Server) referenceGrade() (string, error) {
	w, err := navgraph.BuildReference(navgraph.DefaultReferenceConfig())
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	out, err := s.current().Convert(ctx, w)
	if err != nil {
		return "", err
	}
	return string(out.Assessment.Grade), nil
}

func (s *Server) current() *converter.Converter { return s.converter.Load() }

// Reload swaps in a new simulation configuration. Requests already running
// finish with the configuration they started with.
func (s *Server) Reload(cfg config.SimulationConfig) error {
	if err := cfg.Check(); err != nil {
		return err
	}
	opts := s.current().Options()
	opts.Config = cfg
	s.converter.Store(converter.New(opts))
	s.logger.Info("simulation config reloaded", logging.Count(len(cfg.Validate())))
	return nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler { return s.handler }

// Addr is the listen address for the configured port.
func (s *Server) Addr() string { return fmt.Sprintf(":%d", s.cfg.Port) }

// HealthChecker exposes the registered checks.
func (s *Server) HealthChecker() *health.HealthChecker { return s.healthChecker }

// Uptime is the time since New.
func (s *Server) Uptime() time.Duration { return time.Since(s.startTime) }
