package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap/zaptest"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	return sums
}

func TestGenerationMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	gm, err := NewGenerationMetrics(provider.Meter("test"), zaptest.NewLogger(t))
	require.NoError(t, err)

	ctx := context.Background()
	gm.RecordPreview(ctx, "pallet-rack", 5, 2*time.Millisecond)
	gm.RecordCommit(ctx, "pallet-rack", 120, 40*time.Millisecond)
	gm.RecordCommit(ctx, "pallet-rack", 30, 10*time.Millisecond)
	gm.RecordRejection(ctx, "pallet-rack", "commit", "SPACE_TOO_LARGE", time.Millisecond)

	sums := collectSums(t, reader)
	assert.Equal(t, int64(5), sums["wms_addresses_previewed_total"])
	assert.Equal(t, int64(150), sums["wms_addresses_committed_total"])
	assert.Equal(t, int64(1), sums["wms_generation_rejected_total"])
}

func TestGenerationMetrics_NilMeter(t *testing.T) {
	_, err := NewGenerationMetrics(nil, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestGenerationMetrics_NilReceiver(t *testing.T) {
	var gm *GenerationMetrics
	assert.NotPanics(t, func() {
		gm.RecordPreview(context.Background(), "x", 1, time.Millisecond)
		gm.RecordCommit(context.Background(), "x", 1, time.Millisecond)
		gm.RecordRejection(context.Background(), "x", "preview", "VALIDATION_FAILED", time.Millisecond)
	})
}

func TestGenerationMetrics_NoopMeter(t *testing.T) {
	gm, err := NewGenerationMetrics(noop.NewMeterProvider().Meter("noop"), nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		gm.RecordCommit(context.Background(), "x", 10, time.Millisecond)
	})
}
