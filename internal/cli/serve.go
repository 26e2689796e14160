package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/flowserve"
	httpAdapter "github.com/aretw0/flowserve/pkg/adapters/http"
	"github.com/aretw0/flowserve/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultShutdownTimeout bounds graceful shutdown when none is configured.
const DefaultShutdownTimeout = 5 * time.Second

// Server wires the workflow engine, its HTTP transport and its metrics.
type Server struct {
	cfg      ServeConfig
	logger   *slog.Logger
	reloader *flowserve.Reloader
	handler  http.Handler
	metrics  http.Handler
}

// NewServer loads the workflow from src and prepares the handlers.
func NewServer(ctx context.Context, cfg ServeConfig, src *Source, logger *slog.Logger, opts ...flowserve.Option) (*Server, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	engineOpts := append([]flowserve.Option{
		flowserve.WithLogger(logger),
		flowserve.WithName(src.Name),
		flowserve.WithLifecycleHooks(observability.ChainHooks(
			metrics.Hooks(),
			observability.LoggingHooks(logger),
		)),
	}, opts...)

	reloader, err := flowserve.NewReloader(ctx, src.Loader, logger, engineOpts...)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:      cfg,
		logger:   logger,
		reloader: reloader,
		handler: httpAdapter.NewHandler(reloader,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMaxBodyBytes(cfg.MaxBodyBytes),
			httpAdapter.WithCORS(cfg.CORS),
		),
		metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}, nil
}

// Handler returns the workflow handler.
func (s *Server) Handler() http.Handler { return s.handler }

// MetricsHandler returns the Prometheus scrape handler.
func (s *Server) MetricsHandler() http.Handler { return s.metrics }

// Reloader returns the engine holder used by the handler.
func (s *Server) Reloader() *flowserve.Reloader { return s.reloader }

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	servers := []*http.Server{srv}

	// Channel to listen for errors coming from the listeners.
	serverErrors := make(chan error, 2)

	go func() {
		s.logger.Info("Starting flowserve server", "address", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	if s.cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", s.metrics)
		metricsSrv := &http.Server{
			Addr:              s.cfg.MetricsAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		servers = append(servers, metricsSrv)
		go func() {
			s.logger.Info("Starting metrics server", "address", metricsSrv.Addr)
			serverErrors <- metricsSrv.ListenAndServe()
		}()
	}

	if s.cfg.Watch {
		go func() {
			err := s.reloader.Watch(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("Hot reload disabled", "error", err)
			}
		}()
	}

	select {
	case err := <-serverErrors:
		shutdown(servers, s.cfg.ShutdownTimeout, s.logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutdown signal received, shutting down server")
		if err := shutdown(servers, s.cfg.ShutdownTimeout, s.logger); err != nil {
			return err
		}
		s.logger.Info("flowserve server stopped gracefully")
		return nil
	}
}

func shutdown(servers []*http.Server, timeout time.Duration, logger *slog.Logger) error {
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	// Give outstanding requests a deadline for completion.
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, srv := range servers {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown did not complete", "address", srv.Addr, "error", err)
			if cerr := srv.Close(); cerr != nil {
				errs = append(errs, cerr)
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
