package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingSink collects entries handed to it.
type recordingSink struct {
	mu      sync.Mutex
	entries []*model.LogEntry
	reject  bool
}

func (s *recordingSink) Log(entry *model.LogEntry) bool {
	if s.reject {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return true
}

func (s *recordingSink) Entries() []*model.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.LogEntry(nil), s.entries...)
}

// withClaims authenticates every request as claims.
func withClaims(claims *dto.Claims) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetClaims(c, claims)
		c.Next()
	}
}

func okHandler(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
