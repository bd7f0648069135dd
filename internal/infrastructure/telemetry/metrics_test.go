package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.Nil(t, mp.Handler())
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestNewMeterProvider_NoReader(t *testing.T) {
	_, err := NewMeterProvider(context.Background(), MetricsConfig{Enabled: true}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewMeterProvider_Prometheus(t *testing.T) {
	ctx := context.Background()
	mp, err := NewMeterProvider(ctx, MetricsConfig{
		Enabled:     true,
		ServiceName: "wms-test",
		Prometheus:  true,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	require.True(t, mp.IsEnabled())
	require.NotNil(t, mp.Handler())

	counter, err := NewCounter(mp.Meter("test"), "scrape_test_events", "Events seen by the scrape test", "1")
	require.NoError(t, err)
	counter.Add(ctx, 3)

	rec := httptest.NewRecorder()
	mp.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "scrape_test_events")
}
