package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

const (
	// TenantIDKey is the gin context key holding the tenant uuid.UUID
	TenantIDKey = "tenant_id"
	// TenantHeaderKey is the header identifying the tenant
	TenantHeaderKey = "X-Tenant-ID"
	// UserIDHeaderKey optionally identifies the acting user
	UserIDHeaderKey = "X-User-ID"
	// UserIDKey is the gin context key holding the user uuid.UUID
	UserIDKey = "user_id"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// SkipPaths do not require a tenant (health checks)
	SkipPaths []string
}

// DefaultTenantConfig returns the default tenant middleware configuration
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/metrics", "/api/v1/ping"},
	}
}

// Tenant requires a valid X-Tenant-ID on every request outside SkipPaths and
// stores it on both the gin context and the request context. A valid
// X-User-ID is picked up as the acting user.
func Tenant(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if path == skip || strings.HasPrefix(path, skip+"/") {
				c.Next()
				return
			}
		}

		raw := strings.TrimSpace(c.GetHeader(TenantHeaderKey))
		if raw == "" {
			respondUnauthorized(c, "Tenant identification required")
			return
		}
		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			respondUnauthorized(c, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)
		if userID, err := uuid.Parse(c.GetHeader(UserIDHeaderKey)); err == nil {
			c.Set(UserIDKey, userID)
		}
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeUnauthorized, message, GetRequestID(c),
	))
}

// GetTenantID returns the tenant set by Tenant, or uuid.Nil
func GetTenantID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}

// GetUserID returns the acting user, if the request named one
func GetUserID(c *gin.Context) *uuid.UUID {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return &id
		}
	}
	return nil
}
