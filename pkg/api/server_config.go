package api

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-retrofit/pkg/api/middleware"
	"github.com/dd0wney/cluso-retrofit/pkg/converter"
	"github.com/dd0wney/cluso-retrofit/pkg/logging"
	"github.com/dd0wney/cluso-retrofit/pkg/metrics"
)

const (
	DefaultPort          = 8080
	DefaultMaxBodyBytes  = 10 << 20
	DefaultMaxConcurrent = 8
	// DefaultMaxNodes bounds the navigation graph a request may ask for.
	DefaultMaxNodes = 5000
)

// Config configures a Server. Zero values take the defaults above.
type Config struct {
	Port          int
	MaxBodyBytes  int64
	MaxConcurrent int
	Converter     converter.Options
	CORS          *middleware.CORSConfig
	Logger        logging.Logger
	// Metrics defaults to a fresh registry, not the process default, so
	// servers in tests do not share counters.
	Metrics *metrics.Registry
}

// DefaultConfig returns the defaults with converter defaults and a node cap.
func DefaultConfig() Config {
	opts := converter.DefaultOptions()
	opts.Distance.MaxNodes = DefaultMaxNodes
	opts.Grid.MaxNodes = DefaultMaxNodes
	return Config{
		Port:          DefaultPort,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		MaxConcurrent: DefaultMaxConcurrent,
		Converter:     opts,
		CORS:          middleware.DefaultCORSConfig(),
	}
}

// ConfigFromEnv applies RETROFIT_PORT, RETROFIT_MAX_CONCURRENT and
// RETROFIT_CORS_ORIGINS on top of DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if v := os.Getenv("RETROFIT_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 || p > 65535 {
			return cfg, fmt.Errorf("invalid RETROFIT_PORT %q", v)
		}
		cfg.Port = p
	}
	if v := os.Getenv("RETROFIT_MAX_CONCURRENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("invalid RETROFIT_MAX_CONCURRENT %q", v)
		}
		cfg.MaxConcurrent = n
	}
	cfg.CORS = middleware.CORSFromEnv()
	return cfg, nil
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Port == 0 {
		c.Port = d.Port
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = d.MaxBodyBytes
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	if c.CORS == nil {
		c.CORS = d.CORS
	}
	if c.Logger == nil {
		c.Logger = logging.NewNopLogger()
	}
	if c.Metrics == nil {
		c.Metrics = metrics.NewRegistry()
	}
	return c
}
