package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis. It returns a nil client and no error
// when Redis is not configured.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	addr := cfg.Addr()
	if addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewStructureReader wraps reader with the axis cache when it is enabled.
// A nil client keeps the cache process-local.
func NewStructureReader(reader location.StructureReader, cfg config.AxisCacheConfig, client *redis.Client, logger *zap.Logger) location.StructureReader {
	if !cfg.Enabled {
		return reader
	}
	opts := []StructureCacheOption{WithTTL(cfg.TTL), WithKeyPrefix(cfg.KeyPrefix), WithLogger(logger)}
	if client != nil {
		opts = append(opts, WithRedisClient(client))
	} else {
		logger.Info("Redis not configured, structure cache is process-local")
	}
	return NewCachedStructureReader(reader, opts...)
}
