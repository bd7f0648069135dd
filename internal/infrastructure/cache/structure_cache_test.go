package cache

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/location"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockStructureReader struct {
	mock.Mock
}

func (m *mockStructureReader) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*location.PhysicalStructure, error) {
	args := m.Called(ctx, tenantID, slug)
	if s := args.Get(0); s != nil {
		return s.(*location.PhysicalStructure), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeRedis answers GET, SET and DEL from a map without touching the network
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		if f.err != nil {
			cmd.SetErr(f.err)
			return f.err
		}

		args := cmd.Args()
		switch cmd.Name() {
		case "get":
			v, ok := f.data[args[1].(string)]
			if !ok {
				cmd.SetErr(redis.Nil)
				return redis.Nil
			}
			cmd.(*redis.StringCmd).SetVal(v)
		case "set":
			key := args[1].(string)
			f.data[key] = string(args[2].([]byte))
			if len(args) > 4 {
				if ex, ok := args[4].(int64); ok {
					f.ttls[key] = time.Duration(ex) * time.Second
				}
			}
			cmd.(*redis.StatusCmd).SetVal("OK")
		case "del":
			var n int64
			for _, a := range args[1:] {
				if _, ok := f.data[a.(string)]; ok {
					delete(f.data, a.(string))
					n++
				}
			}
			cmd.(*redis.IntCmd).SetVal(n)
		}
		return nil
	}
}

func newFakeClient(t *testing.T, f *fakeRedis) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0", MaxRetries: -1})
	client.AddHook(f)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testStructure(tenantID uuid.UUID) *location.PhysicalStructure {
	level, _ := location.DefaultAxis(location.AxisLevel)
	level.Active = true
	street, _ := location.DefaultAxis(location.AxisStreet)
	street.Active = true
	return &location.PhysicalStructure{
		ID:       uuid.New(),
		TenantID: tenantID,
		Slug:     "rack",
		Name:     "Rack",
		Axes:     []location.AxisDefinition{street, level},
	}
}

func TestCachedStructureReader_LocalTier(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	structure := testStructure(tenantID)

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(structure, nil).Once()

	reader := NewCachedStructureReader(next)

	first, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	second, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)

	assert.Equal(t, structure, first)
	assert.Equal(t, structure, second)
	next.AssertExpectations(t)

	hits, misses := reader.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCachedStructureReader_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(testStructure(tenantID), nil).Once()
	reader := NewCachedStructureReader(next)

	first, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	first.Axes[0].Active = false

	second, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	assert.True(t, second.Axes[0].Active)
}

func TestCachedStructureReader_Expiry(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(testStructure(tenantID), nil).Twice()

	reader := NewCachedStructureReader(next, WithTTL(time.Minute), withClock(func() time.Time { return now }))

	_, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	_, err = reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	now = now.Add(time.Minute)
	_, err = reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)

	next.AssertExpectations(t)
}

func TestCachedStructureReader_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(nil, shared.ErrNotFound).Twice()
	reader := NewCachedStructureReader(next)

	for range 2 {
		_, err := reader.FindBySlug(ctx, tenantID, "rack")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	}
	next.AssertExpectations(t)
}

func TestCachedStructureReader_RedisTier(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	structure := testStructure(tenantID)
	fake := newFakeRedis()
	client := newFakeClient(t, fake)

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(structure, nil).Once()

	writer := NewCachedStructureReader(next, WithRedisClient(client), WithTTL(2*time.Minute))
	_, err := writer.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)

	key := "wms:structure:" + tenantID.String() + ":rack"
	require.Contains(t, fake.data, key)
	assert.Equal(t, 2*time.Minute, fake.ttls[key])

	// a second instance shares the Redis tier but not the local one
	other := new(mockStructureReader)
	reader := NewCachedStructureReader(other, WithRedisClient(client))
	found, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)
	assert.Equal(t, structure, found)
	other.AssertNotCalled(t, "FindBySlug", mock.Anything, mock.Anything, mock.Anything)
	next.AssertExpectations(t)
}

func TestCachedStructureReader_RedisFailureFallsThrough(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")

	core, logs := observer.New(zapcore.WarnLevel)
	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(testStructure(tenantID), nil).Once()

	reader := NewCachedStructureReader(next, WithRedisClient(newFakeClient(t, fake)), WithLogger(zap.New(core)))
	found, err := reader.FindBySlug(ctx, tenantID, "rack")

	require.NoError(t, err)
	assert.Equal(t, "rack", found.Slug)
	assert.Equal(t, 1, logs.FilterMessage("Structure cache read failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Structure cache write failed").Len())
}

func TestNewStructureReader(t *testing.T) {
	next := new(mockStructureReader)

	disabled := NewStructureReader(next, config.AxisCacheConfig{Enabled: false}, nil, zap.NewNop())
	assert.Same(t, next, disabled)

	enabled := NewStructureReader(next, config.AxisCacheConfig{Enabled: true, TTL: time.Minute}, nil, zap.NewNop())
	cached, ok := enabled.(*CachedStructureReader)
	require.True(t, ok)
	assert.Nil(t, cached.client)
	assert.Equal(t, time.Minute, cached.ttl)
	assert.Equal(t, "wms:structure:", cached.keyPrefix)
}

func TestNewStructureReader_KeyPrefix(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := newFakeRedis()

	next := new(mockStructureReader)
	next.On("FindBySlug", ctx, tenantID, "rack").Return(testStructure(tenantID), nil).Once()

	reader := NewStructureReader(next,
		config.AxisCacheConfig{Enabled: true, TTL: time.Minute, KeyPrefix: "wms-eu:structure:"},
		newFakeClient(t, fake), zap.NewNop())
	_, err := reader.FindBySlug(ctx, tenantID, "rack")
	require.NoError(t, err)

	assert.Contains(t, fake.data, "wms-eu:structure:"+tenantID.String()+":rack")
	assert.NotContains(t, fake.data, "wms:structure:"+tenantID.String()+":rack")
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
