// Package middleware provides the HTTP middleware stack of the allocation service:
// request ids, logging, authentication, scopes, rate limiting, idempotency and timeouts.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression returns a middleware that gzips responses for clients that accept it.
// Metrics scrapes are left uncompressed; promhttp negotiates its own encoding.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"}))
}
