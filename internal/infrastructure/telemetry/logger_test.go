package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogger_InjectsTraceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.OTLPConfig{ServiceName: "products-api", Environment: "test"})

	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	ctx = WithHTTPRoute(ctx, "/api/products/{id}")

	logger.InfoContext(ctx, "hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "products-api", entry["service.name"])
	assert.Equal(t, "test", entry["environment"])
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
	assert.Equal(t, "/api/products/{id}", entry["http.route"])
}

func TestLogger_WithoutSpan(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.OTLPConfig{ServiceName: "products-api"})

	logger.Info("plain")

	entry := decodeLine(t, &buf)
	assert.NotContains(t, entry, "trace_id")
	assert.NotContains(t, entry, "http.route")
	assert.NotContains(t, entry, "product.id")
}

func TestHTTPRouteFromContext(t *testing.T) {
	assert.Empty(t, HTTPRouteFromContext(context.Background()))
	ctx := WithHTTPRoute(context.Background(), "/health")
	assert.Equal(t, "/health", HTTPRouteFromContext(ctx))
}

func TestLogger_InjectsProductID(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.OTLPConfig{ServiceName: "products-api"})

	ctx := WithProductID(context.Background(), 9001)
	logger.InfoContext(ctx, "Product retrieved successfully")

	entry := decodeLine(t, &buf)
	assert.Equal(t, float64(9001), entry["product.id"])

	id, ok := ProductIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int32(9001), id)

	_, ok = ProductIDFromContext(context.Background())
	assert.False(t, ok)
}
