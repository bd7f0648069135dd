package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type healthBody struct {
	Success bool           `json:"success"`
	Data    HealthResponse `json:"data"`
}

func serveSystem(t *testing.T, h *SystemHandler, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/api/v1/ping", h.Ping)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestSystemHandler_HealthWithoutChecks(t *testing.T) {
	w := serveSystem(t, NewSystemHandler("wms-address", "1.0.0"), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	var body healthBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Data.Status)
	assert.Equal(t, "wms-address", body.Data.Name)
	assert.NotEmpty(t, body.Data.GoVersion)
	assert.Empty(t, body.Data.Components)
}

func TestSystemHandler_HealthReportsComponents(t *testing.T) {
	up := HealthCheck{Name: "database", Check: func(context.Context) error { return nil }}
	down := HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all up", func(t *testing.T) {
		w := serveSystem(t, NewSystemHandler("wms-address", "1.0.0", up), "/health")

		assert.Equal(t, http.StatusOK, w.Code)
		var body healthBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, map[string]string{"database": "up"}, body.Data.Components)
	})

	t.Run("one down", func(t *testing.T) {
		w := serveSystem(t, NewSystemHandler("wms-address", "1.0.0", up, down), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var body healthBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "degraded", body.Data.Status)
		assert.Equal(t, "up", body.Data.Components["database"])
		assert.Equal(t, "down: connection refused", body.Data.Components["redis"])
	})
}

func TestSystemHandler_Ping(t *testing.T) {
	w := serveSystem(t, NewSystemHandler("wms-address", "1.0.0"), "/api/v1/ping")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"pong"`)
}
