package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	locationapp "github.com/wms/backend/internal/application/location"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/infrastructure/cache"
	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/persistence"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"github.com/wms/backend/internal/interfaces/http/handler"
	"github.com/wms/backend/internal/interfaces/http/middleware"
	"github.com/wms/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting address service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, metricsConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	exportLevel, _ := logger.ParseLevel(cfg.Log.Level)
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		Level:             exportLevel,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	defer shutdownTelemetry(log, tracerProvider, meterProvider, loggerProvider)

	// from here on every log line is also exported when logs are enabled
	log = loggerProvider.Bridge(log)

	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	generationMetrics, err := telemetry.NewGenerationMetrics(meter, log)
	if err != nil {
		log.Fatal("Failed to register generation metrics", zap.Error(err))
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.DB),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithIgnoreRecordNotFoundError(!cfg.Log.DBLogNotFound),
	)
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        "postgresql",
	}, log)
	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithGormLogger(gormLog),
		persistence.WithTracing(dbTracing),
	)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the shared axis cache tier when configured
	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
	}

	// Repositories
	structureReader := cache.NewStructureReader(
		persistence.NewGormPhysicalStructureRepository(db.DB),
		cfg.AxisCache,
		redisClient,
		log,
	)
	addressRepo := persistence.NewGormAddressRepository(db.DB, cfg.Generator.InsertBatchSize)
	groupRepo := persistence.NewGormAddressGroupRepository(db.DB)

	// Application services
	generator := location.NewGenerator(location.GeneratorConfig{
		MaxAddresses:      cfg.Generator.MaxAddresses,
		Workers:           cfg.Generator.Workers,
		ParallelThreshold: cfg.Generator.ParallelThreshold,
	})
	generationService := locationapp.NewAddressGenerationService(
		structureReader,
		addressRepo,
		generator,
		locationapp.PreviewLimits{
			Default: cfg.Generator.DefaultPreviewLimit,
			Max:     cfg.Generator.MaxPreviewLimit,
		},
		generationMetrics,
		log,
	)
	groupService := locationapp.NewAddressGroupService(groupRepo, structureReader, generationService)
	structureService := locationapp.NewStructureService(structureReader)

	// HTTP
	checks := []handler.HealthCheck{{Name: "database", Check: db.Ping}}
	if redisClient != nil {
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.New(router.Config{
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: cfg.Telemetry.Enabled,
		Meter:          meter,
		CORS:           corsCfg,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		CommitRateLimit: middleware.RateLimitConfig{
			Enabled:   cfg.RateLimit.Enabled,
			PerMinute: cfg.RateLimit.CommitsPerMinute,
			Burst:     cfg.RateLimit.Burst,
		},
		MetricsHandler: meterProvider.Handler(),
		Logger:         log,
	}, router.Handlers{
		Address:      handler.NewAddressHandler(generationService),
		AddressGroup: handler.NewAddressGroupHandler(groupService),
		Structure:    handler.NewStructureHandler(structureService),
		System:       handler.NewSystemHandler(cfg.App.Name, version, checks...),
	})
	if err != nil {
		log.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Server exited gracefully")
}

func metricsConfig(t config.TelemetryConfig) telemetry.MetricsConfig {
	mc := telemetry.MetricsConfig{
		Enabled:        t.MetricsEnabled,
		ExportInterval: t.MetricsInterval,
		ServiceName:    t.ServiceName,
		Insecure:       t.Insecure,
		Prometheus:     t.MetricsExporter == "prometheus" || t.MetricsExporter == "both",
	}
	if t.MetricsExporter != "prometheus" {
		mc.CollectorEndpoint = t.CollectorEndpoint
	}
	return mc
}

func shutdownTelemetry(log *zap.Logger, tp *telemetry.TracerProvider, mp *telemetry.MeterProvider, lp *telemetry.LoggerProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := mp.Shutdown(ctx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := lp.Shutdown(ctx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
}
