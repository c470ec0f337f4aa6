// Package server runs an HTTP handler with signal driven shutdown and
// configuration reload.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/logging"
)

// DefaultShutdownTimeout bounds how long in-flight requests may drain.
const DefaultShutdownTimeout = 30 * time.Second

// ReloadFunc reloads configuration in place.
type ReloadFunc func() error

// GracefulServer wraps an http.Server with graceful shutdown.
type GracefulServer struct {
	server          *http.Server
	logger          logging.Logger
	shutdownTimeout time.Duration
	shutdownCh      chan struct{}
	shutdownOnce    sync.Once
	shutdownErr     error

	reloadMu sync.RWMutex
	reloadFn ReloadFunc
}

// NewGracefulServer creates a server for handler on addr.
func NewGracefulServer(addr string, handler http.Handler, logger logging.Logger) *GracefulServer {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &GracefulServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
		logger:          logger.With(logging.Component("http")),
		shutdownTimeout: DefaultShutdownTimeout,
		shutdownCh:      make(chan struct{}),
	}
}

// SetShutdownTimeout overrides DefaultShutdownTimeout.
func (gs *GracefulServer) SetShutdownTimeout(d time.Duration) {
	gs.shutdownTimeout = d
}

// Run listens on the configured address until ctx is done, then drains.
func (gs *GracefulServer) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return err
	}
	return gs.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (gs *GracefulServer) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		gs.logger.Info("http server listening", logging.String("addr", ln.Addr().String()))
		if err := gs.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	if err := gs.Shutdown(gs.shutdownTimeout); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests. Later calls return the first result.
func (gs *GracefulServer) Shutdown(timeout time.Duration) error {
	gs.shutdownOnce.Do(func() {
		close(gs.shutdownCh)
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		gs.logger.Info("http server shutting down", logging.Duration("timeout", timeout))
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.shutdownErr = err
			gs.logger.Error("http server shutdown", logging.Error(err))
			return
		}
		gs.logger.Info("http server stopped")
	})
	return gs.shutdownErr
}

// IsShuttingDown reports whether Shutdown has started.
func (gs *GracefulServer) IsShuttingDown() bool {
	select {
	case <-gs.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownChannel closes when shutdown starts.
func (gs *GracefulServer) ShutdownChannel() <-chan struct{} {
	return gs.shutdownCh
}

// SetReloadFunc sets the function run on SIGHUP.
func (gs *GracefulServer) SetReloadFunc(fn ReloadFunc) {
	gs.reloadMu.Lock()
	defer gs.reloadMu.Unlock()
	gs.reloadFn = fn
}

// Reload runs the reload function, if any.
func (gs *GracefulServer) Reload() error {
	gs.reloadMu.RLock()
	fn := gs.reloadFn
	gs.reloadMu.RUnlock()

	if fn == nil {
		gs.logger.Debug("reload requested with no reload function")
		return nil
	}
	if err := fn(); err != nil {
		gs.logger.Error("configuration reload failed", logging.Error(err))
		return err
	}
	gs.logger.Info("configuration reloaded")
	return nil
}

// WithSignals returns a context cancelled on SIGINT or SIGTERM. SIGHUP
// triggers Reload until the context ends.
func (gs *GracefulServer) WithSignals(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				_ = gs.Reload()
			}
		}
	}()
	return ctx, cancel
}
