package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/wms/backend/internal/infrastructure/config"
	"github.com/wms/backend/internal/infrastructure/telemetry"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection and provides methods for database operations
type Database struct {
	DB *gorm.DB
}

// DatabaseOption configures how the connection is opened
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	logger  gormlogger.Interface
	tracing *telemetry.DBTracingPlugin
}

// WithGormLogger routes GORM logging through the given logger
func WithGormLogger(l gormlogger.Interface) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = l
	}
}

// WithTracing registers the DB tracing plugin on the connection
func WithTracing(p *telemetry.DBTracingPlugin) DatabaseOption {
	return func(o *databaseOptions) {
		o.tracing = p
	}
}

// NewDatabase creates a new PostgreSQL connection with the given configuration
func NewDatabase(cfg *config.DatabaseConfig, opts ...DatabaseOption) (*Database, error) {
	db, err := Open(postgres.Open(cfg.DSN()), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Open opens a GORM connection over any dialector. Driver errors are
// translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, opts ...DatabaseOption) (*Database, error) {
	o := databaseOptions{logger: gormlogger.Default.LogMode(gormlogger.Silent)}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 o.logger,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	if o.tracing != nil {
		if err := o.tracing.Register(db); err != nil {
			return nil, fmt.Errorf("failed to register db tracing: %w", err)
		}
	}

	return &Database{DB: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Stats returns database connection pool statistics
func (d *Database) Stats() (ConnectionStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return ConnectionStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return ConnectionStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}, nil
}

// ConnectionStats holds database connection pool statistics
type ConnectionStats struct {
	MaxOpenConnections int           `json:"max_open_connections"`
	OpenConnections    int           `json:"open_connections"`
	InUse              int           `json:"in_use"`
	Idle               int           `json:"idle"`
	WaitCount          int64         `json:"wait_count"`
	WaitDuration       time.Duration `json:"wait_duration"`
}
