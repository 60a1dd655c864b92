package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Telemetry holds all OpenTelemetry components
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *metric.MeterProvider
	// Registry backs the /metrics endpoint
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// NewTelemetry initializes all OpenTelemetry components
func NewTelemetry(cfg *config.OTLPConfig) (*Telemetry, error) {
	// Initialize logger first for debugging
	logger := initLogger(cfg)

	logger.Info("Initializing OpenTelemetry",
		slog.String("endpoint", cfg.Endpoint),
		slog.String("service_name", cfg.ServiceName),
	)

	tp, err := initTracerProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer provider: %w", err)
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	logger.Info("Tracer provider initialized successfully")

	// Initialize meter provider with DUAL exporters (OTLP + Prometheus)
	reg := newRegistry()
	mp, err := initMeterProvider(cfg, reg)
	if err != nil {
		_ = tp.Shutdown(context.Background())
		return nil, fmt.Errorf("failed to initialize meter provider: %w", err)
	}

	otel.SetMeterProvider(mp)
	logger.Info("Meter provider initialized successfully (OTLP + Prometheus exporters)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Registry:       reg,
		Logger:         logger,
	}, nil
}

// NewNoOpTelemetry creates a telemetry instance that exports nothing over
// OTLP. Spans are still created locally, so logs carry trace ids, and metrics
// remain available on /metrics.
func NewNoOpTelemetry(cfg *config.OTLPConfig) *Telemetry {
	logger := initLogger(cfg)

	tp := sdktrace.NewTracerProvider()

	reg := newRegistry()
	var opts []metric.Option
	if reader, err := newPrometheusReader(reg); err != nil {
		logger.Warn("Prometheus exporter unavailable", slog.String("error", err.Error()))
	} else {
		opts = append(opts, metric.WithReader(reader))
	}
	mp := metric.NewMeterProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	logger.Info("Telemetry initialized in no-op mode (export disabled)")

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Registry:       reg,
		Logger:         logger,
	}
}

// Shutdown flushes and stops both providers. Both are always shut down; the
// errors are joined.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	t.Logger.Info("Shutting down OpenTelemetry")

	var errs []error
	if err := t.TracerProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown tracer provider", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := t.MeterProvider.Shutdown(ctx); err != nil {
		t.Logger.Error("Failed to shutdown meter provider", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	t.Logger.Info("OpenTelemetry shutdown successfully")
	return nil
}
