package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/http/response"
	"github.com/mrops-br/adventureworks-api/internal/infrastructure/telemetry"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// ReadinessChecker reports whether the backing store can serve requests
type ReadinessChecker interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	config    *config.ServerConfig
	handler   *handler.ProductHandler
	readiness ReadinessChecker
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	srv       *http.Server
}

// NewServer creates a new HTTP server. readiness may be nil, in which case
// /ready always succeeds.
func NewServer(
	cfg *config.ServerConfig,
	handler *handler.ProductHandler,
	readiness ReadinessChecker,
	logger *slog.Logger,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		handler:   handler,
		readiness: readiness,
		logger:    logger,
		telemetry: telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	// Structured JSON logging middleware (replaces chimiddleware.Logger)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.RequestID)

	// Add HTTP route to context so all logs include it automatically
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.telemetry.MeterProvider.Meter("products-api")
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route(handler.ProductsPath, func(r chi.Router) {
		r.Get("/", s.handler.ListProducts)
		r.Post("/", s.handler.CreateProduct)
		r.Get("/{id:-?[0-9]+}", s.handler.GetProduct)
		r.Put("/{id:-?[0-9]+}", s.handler.UpdateProduct)
		r.Delete("/{id:-?[0-9]+}", s.handler.DeleteProduct)
	})

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Readiness endpoint - checks the database is reachable
	s.router.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if s.readiness != nil {
			if err := s.readiness.Ping(r.Context()); err != nil {
				s.logger.WarnContext(r.Context(), "Readiness check failed",
					slog.String("error", err.Error()),
				)
				response.Error(w, http.StatusServiceUnavailable, err)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.telemetry.Registry, promhttp.HandlerOpts{}))
}

// Handler returns the router wrapped with otelhttp for automatic HTTP
// metrics and tracing (http.server.request.duration, body sizes, ...)
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		// Add route pattern to metrics attributes
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start starts the HTTP server and blocks until it stops. A server stopped
// through Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.srv.Addr),
	)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.srv.Shutdown(ctx)
}
