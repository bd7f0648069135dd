package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"golang.org/x/sync/errgroup"
)

// healthCheckTimeout bounds each dependency check
const healthCheckTimeout = 3 * time.Second

// HealthCheck checks one dependency
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// SystemHandler serves liveness and dependency health endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	startTime time.Time
	checks    []HealthCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		startTime: time.Now(),
		checks:    checks,
	}
}

// HealthResponse reports the state of every checked dependency
type HealthResponse struct {
	Status     string            `json:"status"`
	Name       string            `json:"name"`
	Version    string            `json:"version"`
	GoVersion  string            `json:"go_version"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components,omitempty"`
}

// Health godoc
// @ID           healthCheck
//
//	@Summary		Health check
//	@Description	Checks every dependency concurrently and answers 503 if any is down
//	@Tags			system
//	@Produce		json
//	@Success		200			{object}	HealthResponse
//	@Failure		503			{object}	HealthResponse
//	@Router			/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	results := make([]string, len(h.checks))

	var g errgroup.Group
	for i, check := range h.checks {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
			defer cancel()
			if err := check.Check(ctx); err != nil {
				results[i] = "down: " + err.Error()
				return nil
			}
			results[i] = "up"
			return nil
		})
	}
	_ = g.Wait()

	resp := HealthResponse{
		Status:    "ok",
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	status := http.StatusOK
	if len(h.checks) > 0 {
		resp.Components = make(map[string]string, len(h.checks))
		for i, check := range h.checks {
			resp.Components[check.Name] = results[i]
			if results[i] != "up" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
	}

	c.JSON(status, dto.NewSuccessResponse(resp))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping godoc
// @ID           ping
//
//	@Summary		Ping
//	@Description	Answers without touching any dependency
//	@Tags			system
//	@Produce		json
//	@Success		200			{object}	dto.Response{data=PingResponse}
//	@Router			/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, PingResponse{
		Message:   "pong",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
