// Package server wires the sync HTTP API: routes, middleware chain and
// listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/recordsync/internal/clock"
	"github.com/iudanet/recordsync/internal/config"
	"github.com/iudanet/recordsync/internal/server/handlers"
	"github.com/iudanet/recordsync/internal/server/middleware"
	"github.com/iudanet/recordsync/internal/server/orchestrator"
	"github.com/iudanet/recordsync/internal/server/storage"
)

// Server HTTP сервер синхронизации поверх удаленного хранилища
type Server struct {
	cfg     *config.Server
	store   storage.RecordStore
	service *orchestrator.Service
	limiter *middleware.RateLimiter
	logger  *slog.Logger
	version string
}

// New creates a server. The server owns store and closes it on shutdown.
func New(cfg *config.Server, store storage.RecordStore, clk clock.Clock, logger *slog.Logger, version string) *Server {
	s := &Server{
		cfg:   cfg,
		store: store,
		service: orchestrator.New(store, orchestrator.Options{
			Clock:     clk,
			Logger:    logger,
			OpTimeout: cfg.OpTimeout,
			Workers:   cfg.Workers,
		}),
		logger:  logger,
		version: version,
	}

	if cfg.RateLimit.Requests > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, clk)
	}

	return s
}

// Handler returns the router with the middleware chain applied
func (s *Server) Handler() http.Handler {
	syncHandler := handlers.NewSyncHandler(s.logger, s.service).WithMaxBodyBytes(s.cfg.MaxBodyBytes)
	healthHandler := handlers.NewHealthHandler(s.logger, s.service, s.version)

	syncMux := http.NewServeMux()
	syncMux.HandleFunc("POST /sync/push", syncHandler.Push)
	syncMux.HandleFunc("POST /sync/pull", syncHandler.Pull)
	syncMux.HandleFunc("POST /sync/merge", syncHandler.Merge)
	syncMux.HandleFunc("POST /sync/checkConflicts", syncHandler.CheckConflicts)
	syncMux.HandleFunc("POST /sync/resolve", syncHandler.Resolve)

	var syncRoutes http.Handler = syncMux
	if s.limiter != nil {
		syncRoutes = middleware.RateLimit(s.limiter, s.logger, s.cfg.RateLimit.TrustedProxies...)(syncRoutes)
	}

	mux := http.NewServeMux()
	mux.Handle("/sync/", syncRoutes)
	mux.HandleFunc("GET /health", healthHandler.Health)

	var h http.Handler = mux
	h = middleware.Recovery(s.logger)(h)
	h = middleware.Logging(s.logger, "/health")(h)
	h = middleware.RequestID(h)

	return h
}

// Run listens on the configured address until ctx is done
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully within ShutdownTimeout and closes the store.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	if s.limiter != nil {
		go s.pruneLimiter(ctx)
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("Server started", "addr", ln.Addr().String(), "version", s.version)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			runErr = fmt.Errorf("server forced to shutdown: %w", err)
		}
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close store", "error", err)
		runErr = errors.Join(runErr, err)
	}

	if runErr == nil {
		s.logger.Info("Server stopped gracefully")
	}
	return runErr
}

// pruneLimiter периодически удаляет истекшие окна rate limiter
func (s *Server) pruneLimiter(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RateLimit.Window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.limiter.Prune(); n > 0 {
				s.logger.Debug("Rate limiter pruned", "buckets", n)
			}
		case <-ctx.Done():
			return
		}
	}
}
