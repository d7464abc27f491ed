package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Log levels stored on entries.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// LogEntry is a stored request log or audit record. Request logs carry the
// HTTP fields; audit records additionally carry ActionType and, when the
// caller authenticated, ClientID. Fields holds action specific context such
// as order size or shipment count.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	ClientID   string                 `bson:"client_id,omitempty" json:"client_id,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// IsAudit reports whether the entry records a client action rather than a
// plain request.
func (e *LogEntry) IsAudit() bool {
	return e.ActionType != ""
}

// LevelForStatus maps an HTTP status code to the level a request log is
// stored with.
func LevelForStatus(status int) string {
	switch {
	case status >= 500:
		return LevelError
	case status >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// WithField sets a single context field.
func (e *LogEntry) WithField(key string, value interface{}) *LogEntry {
	return e.WithFields(map[string]interface{}{key: value})
}

// WithFields merges fields into the entry, overwriting existing keys.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	return e
}

// LogQueryOptions filters stored entries. Zero values match everything; Path
// is a case-insensitive substring match and the time bounds are inclusive.
type LogQueryOptions struct {
	RequestID  string
	ActionType string
	ClientID   string
	Level      string
	Method     string
	Path       string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
