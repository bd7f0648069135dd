package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
	Generator GeneratorConfig
	AxisCache AxisCacheConfig
	RateLimit RateLimitConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
	DB     string // silent, error, warn, info
	// DBLogNotFound also logs gorm's record-not-found errors
	DBLogNotFound bool
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings. An empty host disables Redis.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	MetricsEnabled    bool
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // 0.0-1.0
	ServiceName       string
	Insecure          bool // plain gRPC, development only
	MetricsInterval   time.Duration
	MetricsExporter   string // otlp, prometheus or both
	LogsEnabled       bool   // export zap logs to the collector as well
	DBTraceEnabled    bool
	DBLogFullSQL      bool
	DBSlowQueryThresh time.Duration
}

// GeneratorConfig bounds address generation
type GeneratorConfig struct {
	MaxAddresses        int64 // ceiling for a committed batch
	DefaultPreviewLimit int
	MaxPreviewLimit     int
	Workers             int // 0 means GOMAXPROCS
	ParallelThreshold   int // batch size from which formatting fans out
	InsertBatchSize     int
}

// RateLimitConfig throttles address commits per tenant
type RateLimitConfig struct {
	Enabled bool
	// CommitsPerMinute is the sustained commit rate of one tenant
	CommitsPerMinute int
	Burst            int
}

// AxisCacheConfig controls the read-through cache of structure axes
type AxisCacheConfig struct {
	Enabled   bool
	TTL       time.Duration
	KeyPrefix string // Redis key prefix, shared by every instance of the service
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with WMS_ prefix (e.g., WMS_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return fromViper(v)
}

// LoadFile loads configuration from an explicit TOML file plus environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("WMS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Log: LogConfig{
			Level:         v.GetString("log.level"),
			Format:        v.GetString("log.format"),
			Output:        v.GetString("log.output"),
			DB:            v.GetString("log.db"),
			DBLogNotFound: v.GetBool("log.db_log_not_found"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
			MetricsExporter:   v.GetString("telemetry.metrics_exporter"),
			LogsEnabled:       v.GetBool("telemetry.logs_enabled"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogFullSQL:      v.GetBool("telemetry.db_log_full_sql"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
		Generator: GeneratorConfig{
			MaxAddresses:        v.GetInt64("generator.max_addresses"),
			DefaultPreviewLimit: v.GetInt("generator.default_preview_limit"),
			MaxPreviewLimit:     v.GetInt("generator.max_preview_limit"),
			Workers:             v.GetInt("generator.workers"),
			ParallelThreshold:   v.GetInt("generator.parallel_threshold"),
			InsertBatchSize:     v.GetInt("generator.insert_batch_size"),
		},
		AxisCache: AxisCacheConfig{
			Enabled:   v.GetBool("axis_cache.enabled"),
			TTL:       v.GetDuration("axis_cache.ttl"),
			KeyPrefix: v.GetString("axis_cache.key_prefix"),
		},
		RateLimit: RateLimitConfig{
			Enabled:          v.GetBool("rate_limit.enabled"),
			CommitsPerMinute: v.GetInt("rate_limit.commits_per_minute"),
			Burst:            v.GetInt("rate_limit.burst"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "wms-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "wms"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Log.DB == "" {
		cfg.Log.DB = "warn"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// commits of large batches take longer than ordinary requests
		cfg.HTTP.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID", "X-Tenant-ID"}
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "wms-backend"
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 60 * time.Second
	}
	if cfg.Telemetry.MetricsExporter == "" {
		cfg.Telemetry.MetricsExporter = "otlp"
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	if cfg.Generator.MaxAddresses == 0 {
		cfg.Generator.MaxAddresses = 50000
	}
	if cfg.Generator.DefaultPreviewLimit == 0 {
		cfg.Generator.DefaultPreviewLimit = 20
	}
	if cfg.Generator.MaxPreviewLimit == 0 {
		cfg.Generator.MaxPreviewLimit = 500
	}
	if cfg.Generator.ParallelThreshold == 0 {
		cfg.Generator.ParallelThreshold = 2000
	}
	if cfg.Generator.InsertBatchSize == 0 {
		cfg.Generator.InsertBatchSize = 500
	}
	if cfg.RateLimit.CommitsPerMinute == 0 {
		cfg.RateLimit.CommitsPerMinute = 30
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 5
	}
	if cfg.AxisCache.TTL == 0 {
		cfg.AxisCache.TTL = 5 * time.Minute
	}
	if cfg.AxisCache.KeyPrefix == "" {
		cfg.AxisCache.KeyPrefix = "wms:structure:"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	if c.Generator.MaxAddresses < 0 {
		return fmt.Errorf("generator.max_addresses cannot be negative")
	}
	if c.Generator.DefaultPreviewLimit < 0 || c.Generator.MaxPreviewLimit < 0 {
		return fmt.Errorf("generator preview limits cannot be negative")
	}
	if c.Generator.DefaultPreviewLimit > c.Generator.MaxPreviewLimit {
		return fmt.Errorf("generator.default_preview_limit (%d) cannot exceed generator.max_preview_limit (%d)",
			c.Generator.DefaultPreviewLimit, c.Generator.MaxPreviewLimit)
	}
	if c.Generator.Workers < 0 {
		return fmt.Errorf("generator.workers cannot be negative")
	}
	if c.Generator.InsertBatchSize < 0 {
		return fmt.Errorf("generator.insert_batch_size cannot be negative")
	}
	switch c.Telemetry.MetricsExporter {
	case "otlp", "prometheus", "both":
	default:
		return fmt.Errorf("telemetry.metrics_exporter must be otlp, prometheus or both, got %q", c.Telemetry.MetricsExporter)
	}
	if c.RateLimit.CommitsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values cannot be negative")
	}
	if c.AxisCache.TTL < 0 {
		return fmt.Errorf("axis_cache.ttl cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Telemetry.DBLogFullSQL {
			return fmt.Errorf("telemetry.db_log_full_sql must be false in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis address, or "" when Redis is not configured
func (r *RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
