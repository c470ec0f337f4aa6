// Command retrofit-server serves the conversion pipeline over HTTP.
//
// Environment: RETROFIT_PORT, RETROFIT_MAX_CONCURRENT, RETROFIT_CORS_ORIGINS,
// RETROFIT_LOG_LEVEL. Send SIGHUP to re-read the -config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/api"
	"github.com/dd0wney/cluso-retrofit/pkg/config"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/metrics"
	"github.com/dd0wney/cluso-retrofit/pkg/server"
	"github.com/dd0wney/cluso-retrofit/pkg/validation"
)

func main() {
	port := flag.Int("port", 0, "HTTP port (default 8080, or RETROFIT_PORT)")
	configPath := flag.String("config", "", "Simulation config YAML, re-read on SIGHUP")
	shutdownTimeout := flag.Duration("shutdown-timeout", 30*time.Second, "Grace period for in-flight requests")
	flag.Parse()

	logger := logging.DefaultLogger()

	cfg, err := api.ConfigFromEnv()
	if err != nil {
		logger.Error("invalid environment", logging.Error(err))
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	cfg.Logger = logger
	cfg.Metrics = metrics.DefaultRegistry()

	if *configPath != "" {
		sim, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config",
				logging.Path(*configPath),
				logging.Any("fields", validation.BadFields(err)),
				logging.Error(err))
			os.Exit(1)
		}
		cfg.Converter.Config = sim
	}

	s := api.New(cfg)
	gs := server.NewGracefulServer(s.Addr(), s.Handler(), logger)
	gs.SetShutdownTimeout(*shutdownTimeout)
	if *configPath != "" {
		gs.SetReloadFunc(func() error {
			sim, err := config.Load(*configPath)
			if err != nil {
				return fmt.Errorf("reload %s: %w", *configPath, err)
			}
			return s.Reload(sim)
		})
	}

	ctx, cancel := gs.WithSignals(context.Background())
	defer cancel()

	logger.Info("retrofit server starting",
		logging.String("addr", s.Addr()),
		logging.String("version", api.Version),
		logging.Int("max_concurrent", cfg.MaxConcurrent))

	if err := gs.Run(ctx); err != nil {
		logger.Error("server stopped with error", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("retrofit server stopped", logging.Duration("uptime", s.Uptime()))
}
