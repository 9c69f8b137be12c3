// Package httpserver wires the shalinks HTTP endpoints into a server.
package httpserver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/shalinks/internal/config"
	"git.home.luguber.info/inful/shalinks/internal/foundation/errors"
	"git.home.luguber.info/inful/shalinks/internal/logfields"
	"git.home.luguber.info/inful/shalinks/internal/metrics"
	"git.home.luguber.info/inful/shalinks/internal/render"
	"git.home.luguber.info/inful/shalinks/internal/server/handlers"
	smw "git.home.luguber.info/inful/shalinks/internal/server/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server serves the render API.
type Server struct {
	cfg      *config.Config
	logger   *slog.Logger
	registry *prom.Registry
	handler  http.Handler
}

// New builds the route table. When metrics are enabled a Prometheus registry
// is created and the renderer reports to it.
func New(cfg *config.Config, renderer *render.Renderer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, logger: logger}

	if cfg.Metrics.Enabled {
		s.registry = metrics.NewRegistry()
		renderer = renderer.WithRecorder(metrics.NewPrometheusRecorder(s.registry))
	}
	renderer = renderer.WithLogger(logger)

	renderHandlers := handlers.NewRenderHandlers(renderer, cfg.Server.MaxBodyBytes, logger)
	monitoringHandlers := handlers.NewMonitoringHandlers(renderer.Repository(), logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/render", renderHandlers.HandleRender)
	mux.HandleFunc("/filter", renderHandlers.HandleFilter)
	mux.HandleFunc("/classify", renderHandlers.HandleClassify)
	mux.HandleFunc("/health", monitoringHandlers.HandleHealth)
	if s.registry != nil {
		mux.Handle(cfg.Metrics.Path, metrics.HTTPHandler(s.registry))
	}

	s.handler = smw.Chain(logger, errors.NewHTTPErrorAdapter(logger))(mux)
	return s
}

// Handler exposes the wrapped route table, mainly for tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Address)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to listen").
			WithContext("address", s.cfg.Server.Address).
			Build()
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logfields.Address(ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.WrapError(err, errors.CategoryRuntime, "HTTP server failed").Build()
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("HTTP server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "HTTP server shutdown failed").Build()
	}
	return nil
}
