package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"go.opentelemetry.io/otel/trace"
)

// Context key for storing HTTP route
type contextKey string

const (
	httpRouteKey contextKey = "http.route"
	productIDKey contextKey = "product.id"
)

// WithHTTPRoute adds the HTTP route to the context
func WithHTTPRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, httpRouteKey, route)
}

// HTTPRouteFromContext extracts the HTTP route from context
func HTTPRouteFromContext(ctx context.Context) string {
	if route, ok := ctx.Value(httpRouteKey).(string); ok {
		return route
	}
	return ""
}

// WithProductID records the product a request operates on, so every log
// line written while serving it carries product.id
func WithProductID(ctx context.Context, id int32) context.Context {
	return context.WithValue(ctx, productIDKey, id)
}

// ProductIDFromContext extracts the product id from context
func ProductIDFromContext(ctx context.Context) (int32, bool) {
	id, ok := ctx.Value(productIDKey).(int32)
	return id, ok
}

// traceContextHandler is a custom slog handler that injects trace context
type traceContextHandler struct {
	handler slog.Handler
}

// Enabled reports whether the handler handles records at the given level
func (h *traceContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds trace_id, span_id, http.route and product.id to log records from the context
func (h *traceContextHandler) Handle(ctx context.Context, r slog.Record) error {
	// Add trace context if available
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		r.AddAttrs(
			slog.String("trace_id", span.SpanContext().TraceID().String()),
			slog.String("span_id", span.SpanContext().SpanID().String()),
		)
	}

	// Add HTTP route if available in context
	if route := HTTPRouteFromContext(ctx); route != "" {
		r.AddAttrs(slog.String("http.route", route))
	}

	if id, ok := ProductIDFromContext(ctx); ok {
		r.AddAttrs(slog.Int("product.id", int(id)))
	}

	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new handler with additional attributes
func (h *traceContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceContextHandler{
		handler: h.handler.WithAttrs(attrs),
	}
}

// WithGroup returns a new handler with the given group name
func (h *traceContextHandler) WithGroup(name string) slog.Handler {
	return &traceContextHandler{
		handler: h.handler.WithGroup(name),
	}
}

// initLogger initializes a structured logger with trace context injection
func initLogger(cfg *config.OTLPConfig) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg *config.OTLPConfig) *slog.Logger {
	// Create JSON handler for structured logging
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)

	// Wrap with trace context handler
	handler := &traceContextHandler{handler: jsonHandler}

	return slog.New(handler).With(
		slog.String("service.name", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
	)
}
