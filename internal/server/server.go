// Package server exposes the optional Prometheus metrics endpoint. The
// calculator never listens on the network unless a metrics address is
// configured explicitly.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	apperrors "github.com/agbru/linecalc/internal/errors"
	"github.com/agbru/linecalc/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves the metrics and health endpoints on a dedicated
// listener.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig

	httpServer *http.Server
}

// New creates a server bound to addr. The metrics instance is shared
// with the calculation paths that feed it.
func New(addr string, metrics *Metrics, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		metrics:  metrics,
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Start serves until ctx is canceled, then shuts down gracefully. It
// always returns a non-nil reason; a clean shutdown returns ctx.Err().
func (s *Server) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleMetrics)))
	mux.HandleFunc("/healthz", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleHealth)))

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return apperrors.WrapError(err, "metrics server on %s", s.addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.WrapError(err, "shutting down metrics server")
		}
		s.logger.Info("metrics server stopped")
		return ctx.Err()
	}
}

// metricsMiddleware tracks request counts and in-flight requests around
// the next handler.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition. Only GET is accepted.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		if s.logger != nil {
			s.logger.Debug("rejected metrics request",
				logging.String("method", r.Method),
				logging.String("remote", r.RemoteAddr))
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}
