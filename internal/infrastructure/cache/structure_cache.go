package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/wms/backend/internal/domain/location"
	"go.uber.org/zap"
)

const (
	defaultStructureTTL       = 5 * time.Minute
	defaultStructureKeyPrefix = "wms:structure:"
)

// cacheEntry wraps a cached value with its expiration time
type cacheEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// CachedStructureReader is a read-through cache in front of a StructureReader.
// Lookups go to an in-process map first, then to Redis when a client is
// configured, then to the wrapped reader. Redis failures are logged and
// never fail a lookup.
type CachedStructureReader struct {
	next      location.StructureReader
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	logger    *zap.Logger
	now       func() time.Time

	local sync.Map // map[string]*cacheEntry[location.PhysicalStructure]

	hits   atomic.Int64
	misses atomic.Int64
}

// StructureCacheOption is a functional option for configuring the cache
type StructureCacheOption func(*CachedStructureReader)

// WithRedisClient enables the shared Redis tier
func WithRedisClient(client *redis.Client) StructureCacheOption {
	return func(c *CachedStructureReader) {
		c.client = client
	}
}

// WithTTL sets how long a structure stays cached
func WithTTL(ttl time.Duration) StructureCacheOption {
	return func(c *CachedStructureReader) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) StructureCacheOption {
	return func(c *CachedStructureReader) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) StructureCacheOption {
	return func(c *CachedStructureReader) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// withClock overrides the time source
func withClock(now func() time.Time) StructureCacheOption {
	return func(c *CachedStructureReader) {
		c.now = now
	}
}

// NewCachedStructureReader wraps next with a TTL cache
func NewCachedStructureReader(next location.StructureReader, opts ...StructureCacheOption) *CachedStructureReader {
	c := &CachedStructureReader{
		next:      next,
		ttl:       defaultStructureTTL,
		keyPrefix: defaultStructureKeyPrefix,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedStructureReader) key(tenantID uuid.UUID, slug string) string {
	return fmt.Sprintf("%s%s:%s", c.keyPrefix, tenantID, slug)
}

// FindBySlug returns the structure from the first tier that has it.
// Errors of the wrapped reader, not-found included, are never cached.
func (c *CachedStructureReader) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*location.PhysicalStructure, error) {
	key := c.key(tenantID, slug)

	if v, ok := c.local.Load(key); ok {
		entry := v.(*cacheEntry[location.PhysicalStructure])
		if !entry.isExpired(c.now()) {
			c.hits.Add(1)
			return cloneStructure(entry.value), nil
		}
		c.local.Delete(key)
	}

	if structure, ok := c.getRemote(ctx, key); ok {
		c.hits.Add(1)
		c.storeLocal(key, structure)
		return cloneStructure(structure), nil
	}

	c.misses.Add(1)
	structure, err := c.next.FindBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}

	c.storeLocal(key, structure)
	c.setRemote(ctx, key, structure)
	return cloneStructure(structure), nil
}

// Stats returns the hit and miss counters
func (c *CachedStructureReader) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *CachedStructureReader) storeLocal(key string, structure *location.PhysicalStructure) {
	c.local.Store(key, &cacheEntry[location.PhysicalStructure]{
		value:     cloneStructure(structure),
		expiresAt: c.now().Add(c.ttl),
	})
}

func (c *CachedStructureReader) getRemote(ctx context.Context, key string) (*location.PhysicalStructure, bool) {
	if c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Structure cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var structure location.PhysicalStructure
	if err := json.Unmarshal(data, &structure); err != nil {
		c.logger.Warn("Discarding undecodable structure cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &structure, true
}

func (c *CachedStructureReader) setRemote(ctx context.Context, key string, structure *location.PhysicalStructure) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(structure)
	if err != nil {
		c.logger.Warn("Structure cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Structure cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// cloneStructure copies the axis slice so callers cannot mutate cached state
func cloneStructure(s *location.PhysicalStructure) *location.PhysicalStructure {
	out := *s
	out.Axes = make([]location.AxisDefinition, len(s.Axes))
	copy(out.Axes, s.Axes)
	return &out
}

// Ensure CachedStructureReader implements StructureReader
var _ location.StructureReader = (*CachedStructureReader)(nil)
