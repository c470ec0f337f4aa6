package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/dd0wney/cluso-retrofit/pkg/logging"
)

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ln
}

func TestGracefulServer_ServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	logs := logging.NewCapture(logging.DebugLevel)
	gs := NewGracefulServer("", handler, logs)
	ln := listen(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "ok" {
		t.Errorf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	if !gs.IsShuttingDown() {
		t.Error("expected shutting down after cancel")
	}
	select {
	case <-gs.ShutdownChannel():
	default:
		t.Error("shutdown channel not closed")
	}

	infos := logs.Messages(logging.InfoLevel)
	if len(infos) == 0 || infos[len(infos)-1] != "http server stopped" {
		t.Errorf("info logs = %v", infos)
	}
}

func TestGracefulServer_ShutdownIdempotent(t *testing.T) {
	gs := NewGracefulServer(":0", http.NotFoundHandler(), nil)
	if err := gs.Shutdown(time.Second); err != nil {
		t.Fatalf("first shutdown: %v", err)
	}
	if err := gs.Shutdown(time.Second); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}

func TestGracefulServer_RunBadAddr(t *testing.T) {
	gs := NewGracefulServer("256.0.0.1:bad", http.NotFoundHandler(), nil)
	if err := gs.Run(context.Background()); err == nil {
		t.Error("expected listen error")
	}
}

func TestGracefulServer_Reload(t *testing.T) {
	gs := NewGracefulServer(":0", http.NotFoundHandler(), nil)

	if err := gs.Reload(); err != nil {
		t.Errorf("reload without func: %v", err)
	}

	calls := 0
	gs.SetReloadFunc(func() error { calls++; return nil })
	if err := gs.Reload(); err != nil || calls != 1 {
		t.Errorf("reload: err=%v calls=%d", err, calls)
	}

	boom := errors.New("bad config")
	gs.SetReloadFunc(func() error { return boom })
	if err := gs.Reload(); !errors.Is(err, boom) {
		t.Errorf("reload error = %v", err)
	}
}

func TestGracefulServer_SIGHUPReloads(t *testing.T) {
	gs := NewGracefulServer(":0", http.NotFoundHandler(), nil)
	reloaded := make(chan struct{}, 1)
	gs.SetReloadFunc(func() error {
		select {
		case reloaded <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := gs.WithSignals(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("send SIGHUP: %v", err)
	}
	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("SIGHUP did not trigger reload")
	}
	if ctx.Err() != nil {
		t.Error("SIGHUP must not cancel the context")
	}
}
