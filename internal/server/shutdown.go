package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"tariff-dashboard/internal/config"
)

const hookTimeout = 10 * time.Second

type ShutdownHook func(ctx context.Context) error

type GracefulServer struct {
	server     *http.Server
	logger     *slog.Logger
	config     *config.Config
	shutdownFn []ShutdownHook
	mu         sync.RWMutex
}

func NewGracefulServer(server *http.Server, logger *slog.Logger, config *config.Config) *GracefulServer {
	return &GracefulServer{
		server:     server,
		logger:     logger,
		config:     config,
		shutdownFn: make([]ShutdownHook, 0),
	}
}

// RegisterShutdownHook adds fn to the hooks run alongside the HTTP shutdown.
// Hooks run concurrently and each gets its own timeout.
func (gs *GracefulServer) RegisterShutdownHook(fn ShutdownHook) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	gs.shutdownFn = append(gs.shutdownFn, fn)
}

// ListenAndServe serves until SIGINT or SIGTERM and then shuts down.
func (gs *GracefulServer) ListenAndServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", gs.server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", gs.server.Addr, err)
	}
	return gs.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then runs the
// shutdown sequence bounded by the configured shutdown timeout.
func (gs *GracefulServer) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)

	go func() {
		gs.logger.Info("starting server",
			"addr", ln.Addr().String(),
			"read_timeout", gs.config.Server.ReadTimeout,
			"write_timeout", gs.config.Server.WriteTimeout,
		)
		serverErrors <- gs.server.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		gs.logger.Info("shutdown signal received", "cause", context.Cause(ctx))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), gs.config.Server.ShutdownTimeout)
		defer cancel()

		return gs.shutdown(shutdownCtx)
	}
}

func (gs *GracefulServer) shutdown(ctx context.Context) error {
	gs.logger.Info("starting graceful shutdown",
		"timeout", gs.config.Server.ShutdownTimeout,
	)

	gs.mu.RLock()
	hooks := make([]ShutdownHook, len(gs.shutdownFn))
	copy(hooks, gs.shutdownFn)
	gs.mu.RUnlock()

	// Hooks share ctx only; a failing hook does not cancel the others.
	var g errgroup.Group

	for i, hook := range hooks {
		g.Go(func() error {
			hookCtx, cancel := context.WithTimeout(ctx, hookTimeout)
			defer cancel()

			gs.logger.Debug("executing shutdown hook", "hook_index", i)
			if err := hook(hookCtx); err != nil {
				gs.logger.Error("shutdown hook failed",
					"hook_index", i,
					"error", err,
				)
				return fmt.Errorf("shutdown hook %d failed: %w", i, err)
			}
			gs.logger.Debug("shutdown hook completed", "hook_index", i)
			return nil
		})
	}

	g.Go(func() error {
		gs.logger.Info("stopping HTTP server")
		if err := gs.server.Shutdown(ctx); err != nil {
			gs.logger.Error("HTTP server shutdown failed", "error", err)
			return fmt.Errorf("HTTP server shutdown failed: %w", err)
		}
		gs.logger.Info("HTTP server stopped gracefully")
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	select {
	case err := <-done:
		gs.logger.Info("graceful shutdown completed")
		return err

	case <-ctx.Done():
		gs.logger.Warn("shutdown timeout exceeded, forcing exit")
		return ctx.Err()
	}
}
