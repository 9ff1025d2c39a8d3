package timeval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/aelexs/timeval/pkg/timeval"
	"github.com/aelexs/timeval/pkg/timeval/timevaltest"
)

func TestClockRegressionCounter(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	clock := timevaltest.NewFakeClock(timeval.FromSecs[timeval.Timestamp](100))
	stamp := clock.Now()
	clock.Rewind(timeval.DurationFromSecs(1))

	for i := 0; i < 3; i++ {
		_, err := stamp.ElapsedOn(clock)
		require.ErrorIs(t, err, timeval.ErrClockWentBackward)
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "timeval.clock.regressions" {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok)
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
		}
	}
	assert.GreaterOrEqual(t, total, int64(3))
}
