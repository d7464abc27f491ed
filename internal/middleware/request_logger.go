package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/logger"
	"github.com/rs/zerolog"
)

// RequestLogger writes one structured line per request, leveled by status
// code. When sink is non-nil the same entry is persisted through it.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := requestEntry(c, start)
		level, err := zerolog.ParseLevel(entry.Level)
		if err != nil {
			level = zerolog.InfoLevel
		}

		logger.Logger().WithLevel(level).
			Str("request_id", entry.RequestID).
			Str("client_id", entry.ClientID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Msg(entry.Message)

		if sink != nil {
			sink.Log(entry)
		}
	}
}

func requestEntry(c *gin.Context, start time.Time) *model.LogEntry {
	status := c.Writer.Status()
	return &model.LogEntry{
		Timestamp:  start.UTC(),
		Level:      model.LevelForStatus(status),
		Message:    "HTTP request",
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		StatusCode: status,
		Duration:   time.Since(start).Milliseconds(),
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ClientID:   GetClientID(c),
	}
}
