package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wms/backend/internal/interfaces/http/dto"
	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused tenant bucket is kept
const idleLimiterTTL = 10 * time.Minute

// RateLimitConfig holds configuration for the commit rate limiter
type RateLimitConfig struct {
	Enabled bool
	// PerMinute is the sustained rate of one key
	PerMinute int
	Burst     int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands out one token bucket per key
type RateLimiter struct {
	mu        sync.Mutex
	entries   map[string]*limiterEntry
	limit     rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter allowing perMinute events per key with the given burst
func NewRateLimiter(perMinute, burst int) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*limiterEntry),
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   max(burst, 1),
		now:     time.Now,
	}
}

// Reserve takes a token for key. When none is available it returns false
// and how long the caller should wait before retrying.
func (rl *RateLimiter) Reserve(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.entries[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.entries[key] = entry
	}
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, time.Minute
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// sweep drops idle buckets; callers hold mu
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < idleLimiterTTL {
		return
	}
	for key, entry := range rl.entries {
		if now.Sub(entry.lastSeen) > idleLimiterTTL {
			delete(rl.entries, key)
		}
	}
	rl.lastSweep = now
}

// RateLimit throttles requests per tenant, falling back to the client IP
// when no tenant was resolved. Rejected requests get 429 with Retry-After.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.PerMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(cfg.PerMinute, cfg.Burst)

	return func(c *gin.Context) {
		key := c.ClientIP()
		if tenantID := GetTenantID(c); tenantID != uuid.Nil {
			key = tenantID.String()
		}

		allowed, retryAfter := limiter.Reserve(key)
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(seconds, 1)))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRateLimited,
				"Too many address commits. Please try again later.",
				GetRequestID(c),
			))
			return
		}
		c.Next()
	}
}
