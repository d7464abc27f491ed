package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
)

// Audited action types.
const (
	ActionAllocate          = "allocate"
	ActionAllocateCatalog   = "allocate_catalog"
	ActionReplaceWarehouses = "replace_warehouses"
	ActionUpsertWarehouse   = "upsert_warehouse"
	ActionDeleteWarehouse   = "delete_warehouse"
	ActionIssueToken        = "issue_token"
)

// AuditLog records a client action. It never blocks the request; entries are
// dropped when sink is nil or full.
func AuditLog(sink LogSink, c *gin.Context, actionType, message string, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	sink.Log(auditEntry(c, model.LevelInfo, actionType, message, fields))
}

// AuditLogError records a failed client action.
func AuditLogError(sink LogSink, c *gin.Context, actionType, message string, err error, fields map[string]interface{}) {
	if sink == nil {
		return
	}
	entry := auditEntry(c, model.LevelError, actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	sink.Log(entry)
}

func auditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		ClientID:   GetClientID(c),
		ActionType: actionType,
	}
	return entry.WithFields(fields)
}
