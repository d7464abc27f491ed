package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/i18n"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks responses served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the TTL for cached idempotency responses.
	IdempotencyKeyTTL = 5 * time.Minute
)

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Capacity int
	TTL      time.Duration
	Enabled  bool
}

// DefaultIdempotencyConfig returns default idempotency configuration.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Capacity: defaultIdempotencyCapacity,
		TTL:      IdempotencyKeyTTL,
		Enabled:  true,
	}
}

// Idempotency returns a middleware that replays the response of a previous POST, PUT
// or PATCH carrying the same Idempotency-Key, client, path and body. Only 2xx responses
// are remembered. A retry that arrives while the first request is still running gets
// 409 Conflict.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	if cfg.TTL <= 0 {
		cfg.TTL = IdempotencyKeyTTL
	}
	cache := newIdempotencyCache(cfg.Capacity, cfg.TTL)

	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey, err := idempotencyCacheKey(key, GetClientID(c), c.Request)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody)
			return
		}

		if cached, ok := cache.Get(cacheKey); ok {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		if !cache.Begin(cacheKey) {
			abortWithError(c, http.StatusConflict, i18n.ErrKeyConflict)
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		var stored *cachedResponse
		defer func() { cache.Finish(cacheKey, stored) }()

		c.Next()

		if status := writer.Status(); status >= 200 && status < 300 {
			stored = &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        bytes.Clone(writer.body.Bytes()),
			}
		}
	}
}

// idempotencyCacheKey hashes the key with the caller, method, path and body. The body
// is restored for the handler.
func idempotencyCacheKey(idempotencyKey, clientID string, req *http.Request) (string, error) {
	hasher := sha256.New()
	for _, part := range []string{idempotencyKey, clientID, req.Method, req.URL.Path} {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return "", err
		}
		req.Body = io.NopCloser(bytes.NewReader(body))
		hasher.Write(body)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// responseWriter tees the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
