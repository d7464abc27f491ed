package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
)

const (
	// defaultNumShards is the default number of shards for the rate limiter.
	defaultNumShards = 16
)

// clientWindow tracks the fixed-window budget of one identifier.
type clientWindow struct {
	tokens int
	start  time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	windows map[string]*clientWindow
}

// ShardedRateLimiter is a fixed-window limiter whose identifiers are spread over
// FNV-hashed shards to reduce lock contention.
type ShardedRateLimiter struct {
	shards   []*rateLimiterShard
	rate     int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimiter is the limiter used by the router.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a sharded rate limiter allowing rate requests per window.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a rate limiter with a custom shard count.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{windows: make(map[string]*clientWindow)}
	}

	rl := &ShardedRateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}

	go rl.cleanup()
	return rl
}

func (rl *ShardedRateLimiter) getShard(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take consumes one token for identifier. reset is the time until the window restarts.
func (rl *ShardedRateLimiter) take(identifier string) (allowed bool, remaining int, reset time.Duration) {
	shard := rl.getShard(identifier)

	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := rl.now()
	w, exists := shard.windows[identifier]
	if !exists || now.Sub(w.start) >= rl.window {
		w = &clientWindow{tokens: rl.rate, start: now}
		shard.windows[identifier] = w
	}

	reset = rl.window - now.Sub(w.start)
	if w.tokens <= 0 {
		return false, 0, reset
	}
	w.tokens--
	return true, w.tokens, reset
}

func (rl *ShardedRateLimiter) limit(c *gin.Context, identifier string) {
	allowed, remaining, reset := rl.take(identifier)

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.rate))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

	if !allowed {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Seconds()))))
		abortWithError(c, http.StatusTooManyRequests, i18n.ErrKeyRateLimitExceeded)
		return
	}
	c.Next()
}

// RateLimit returns a middleware that limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.limit(c, "ip:"+c.ClientIP())
	}
}

// ClientRateLimit returns a middleware that limits requests per authenticated client.
// Anonymous requests are limited by IP.
func (rl *ShardedRateLimiter) ClientRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.limit(c, clientIdentifier(c))
	}
}

func clientIdentifier(c *gin.Context) string {
	if id := GetClientID(c); id != "" {
		return "client:" + id
	}
	return "ip:" + c.ClientIP()
}

func (rl *ShardedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupExpired()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanupExpired drops windows that ended more than one window ago.
func (rl *ShardedRateLimiter) cleanupExpired() {
	now := rl.now()
	threshold := rl.window * 2

	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, w := range shard.windows {
			if now.Sub(w.start) > threshold {
				delete(shard.windows, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop shuts down the cleanup goroutine. It is safe to call more than once.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked identifiers, in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.windows)
		total += perShard[i]
		shard.mu.Unlock()
	}
	return total, perShard
}
