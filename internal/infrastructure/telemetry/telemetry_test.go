package telemetry

import (
	"context"
	"testing"

	"github.com/mrops-br/adventureworks-api/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNoOpTelemetry_ExposesMetricsOnRegistry(t *testing.T) {
	telem := NewNoOpTelemetry(&config.OTLPConfig{ServiceName: "products-api", Environment: "test"})

	counter, err := telem.MeterProvider.Meter("test").Int64Counter("products.test.counter")
	require.NoError(t, err)
	counter.Add(context.Background(), 3)

	families, err := telem.Registry.Gather()
	require.NoError(t, err)

	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "products_test_counter_total")
	assert.Contains(t, names, "go_goroutines")

	require.NoError(t, telem.Shutdown(context.Background()))
}
