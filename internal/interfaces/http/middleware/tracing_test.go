package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupTestTracer installs a recording tracer provider for the test.
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func newTracedRouter(status int) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{ServiceName: "wms-test", Enabled: true}), Tenant(DefaultTenantConfig()), SpanAttributes())
	router.GET("/api/v1/location/addresses/:id", func(c *gin.Context) {
		c.Status(status)
	})
	return router
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]string {
	out := make(map[attribute.Key]string)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestTracing_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestTracing_SpanPerRequestWithAttributes(t *testing.T) {
	sr := setupTestTracer(t)
	tenantID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/addresses/1", nil)
	req.Header.Set(TenantHeaderKey, tenantID.String())
	req.Header.Set(RequestIDHeader, "req-trace-1")
	w := httptest.NewRecorder()
	newTracedRouter(http.StatusOK).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/location/addresses/:id")

	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-trace-1", attrs["request_id"])
	assert.Equal(t, tenantID.String(), attrs["tenant_id"])
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestSpanAttributes_ServerErrorMarksSpan(t *testing.T) {
	sr := setupTestTracer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/location/addresses/1", nil)
	req.Header.Set(TenantHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	newTracedRouter(http.StatusInternalServerError).ServeHTTP(w, req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestSpanAttributes_NoSpan(t *testing.T) {
	router := gin.New()
	router.Use(SpanAttributes())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
