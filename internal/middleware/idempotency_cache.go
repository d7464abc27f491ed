package middleware

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// defaultIdempotencyCapacity bounds the number of remembered responses.
const defaultIdempotencyCapacity = 10000

// cachedResponse stores a replayable HTTP response.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Timestamp   time.Time
}

// idempotencyCache remembers completed responses in a bounded LRU and tracks keys whose
// first request is still being handled.
type idempotencyCache struct {
	mu       sync.Mutex
	items    *lru.Cache
	inFlight map[string]struct{}
	ttl      time.Duration
	now      func() time.Time
}

func newIdempotencyCache(capacity int, ttl time.Duration) *idempotencyCache {
	if capacity <= 0 {
		capacity = defaultIdempotencyCapacity
	}
	items, err := lru.New(capacity)
	if err != nil {
		// lru.New only fails for a non-positive size.
		panic(err)
	}
	return &idempotencyCache{
		items:    items,
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a stored response that has not expired.
func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, false
	}
	resp := v.(*cachedResponse)
	if c.now().Sub(resp.Timestamp) > c.ttl {
		c.items.Remove(key)
		return nil, false
	}
	return resp, true
}

// Begin marks key as in flight. It returns false when another request holds it.
func (c *idempotencyCache) Begin(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

// Finish releases key and, when resp is non-nil, stores it for replay.
func (c *idempotencyCache) Finish(key string, resp *cachedResponse) {
	if resp != nil {
		resp.Timestamp = c.now()
		c.items.Add(key, resp)
	}

	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

// Len returns the number of stored responses, expired ones included.
func (c *idempotencyCache) Len() int {
	return c.items.Len()
}
