// Package router assembles the gin engine of the address service.
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages versioned API route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine:     engine,
		apiVersion: "v1",
	}
}

// Register adds a RouteRegistrar to be registered by Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup collects the routes of one bounded context under a prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a new domain-specific route group
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{
		name:   name,
		prefix: prefix,
	}
}

// Use adds middleware to this group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, path, handlers)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, path, handlers)
}

// Group creates a sub-group within this domain
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	subgroup := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, subgroup)
	return subgroup
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	if len(dg.middleware) > 0 {
		group.Use(dg.middleware...)
	}
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, subgroup := range dg.subgroups {
		subgroup.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the HTTP handlers served by the engine
type Handlers struct {
	Address      *handler.AddressHandler
	AddressGroup *handler.AddressGroupHandler
	Structure    *handler.StructureHandler
	System       *handler.SystemHandler
}

// Config holds the engine-level settings
type Config struct {
	ServiceName    string
	TracingEnabled bool
	// Meter records HTTP metrics; nil disables them
	Meter          metric.Meter
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	// CommitRateLimit throttles the generate endpoints per tenant
	CommitRateLimit middleware.RateLimitConfig
	// MetricsHandler serves GET /metrics when set
	MetricsHandler http.Handler
	Logger         *zap.Logger
}

// LocationRoutes returns the address generation routes mounted at /location.
// commitLimit guards the endpoints that persist addresses.
func LocationRoutes(h Handlers, commitLimit gin.HandlerFunc) *DomainGroup {
	location := NewDomainGroup("location", "/location")

	location.Group("addresses", "/addresses").
		POST("/preview", h.Address.Preview).
		POST("/generate", commitLimit, h.Address.Generate).
		GET("", h.Address.List)

	location.Group("address-groups", "/address-groups").
		POST("", h.AddressGroup.Create).
		GET("", h.AddressGroup.List).
		GET("/:id", h.AddressGroup.GetByID).
		PUT("/:id", h.AddressGroup.Update).
		DELETE("/:id", h.AddressGroup.Delete).
		GET("/:id/preview", h.AddressGroup.Preview).
		POST("/:id/generate", commitLimit, h.AddressGroup.Generate)

	location.Group("structures", "/structures").
		GET("/:slug/axes", h.Structure.GetAxes)

	return location
}

// New builds the gin engine with the middleware chain and every route.
// Health, metrics and ping bypass the tenant requirement.
func New(cfg Config, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	httpMetrics, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.ServiceName, Enabled: cfg.TracingEnabled}),
		httpMetrics,
		middleware.CORS(cfg.CORS),
		middleware.Secure(),
		middleware.BodyLimit(cfg.MaxBodySize),
		middleware.Tenant(middleware.DefaultTenantConfig()),
		middleware.SpanAttributes(),
	)

	engine.GET("/health", h.System.Health)
	if cfg.MetricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	NewRouter(engine).
		Register(NewDomainGroup("system", "").GET("/ping", h.System.Ping)).
		Register(LocationRoutes(h, middleware.RateLimit(cfg.CommitRateLimit))).
		Setup()

	return engine, nil
}
