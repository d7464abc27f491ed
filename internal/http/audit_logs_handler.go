package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/service"
)

const (
	defaultAuditLogLimit = 50
	maxAuditLogLimit     = 500
)

// AuditLogHandler serves stored request and audit log entries.
type AuditLogHandler struct {
	logs service.LoggingService
}

// NewAuditLogHandler creates a handler for GET /api/audit-logs.
func NewAuditLogHandler(logs service.LoggingService) *AuditLogHandler {
	return &AuditLogHandler{logs: logs}
}

// Query handles GET /api/audit-logs.
//
// @Summary      Query audit logs
// @Description  Returns stored log entries, newest first, with the total count of matching entries.
// @Tags         Audit
// @Produce      json
// @Param        request_id query string false "Request id"
// @Param        action query string false "Action type, e.g. allocate or replace_warehouses"
// @Param        client_id query string false "Authenticated client id"
// @Param        level query string false "Log level"
// @Param        since query string false "RFC 3339 lower bound on the timestamp"
// @Param        until query string false "RFC 3339 upper bound on the timestamp"
// @Param        limit query int false "Page size (default 50, max 500)"
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.AuditLogsResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid query"
// @Failure      403 {object} dto.ErrorResponse "Forbidden - audit:read scope required"
// @Failure      503 {object} dto.ErrorResponse "Log storage unavailable"
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Router       /api/audit-logs [get]
func (h *AuditLogHandler) Query(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts, err := parseLogQuery(c)
	if err != nil {
		builder.BindError(err)
		return
	}

	ctx := c.Request.Context()
	logs, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		status, key := storageError(err)
		builder.Error(status, key, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		status, key := storageError(err)
		builder.Error(status, key, err)
		return
	}

	if logs == nil {
		logs = []model.LogEntry{}
	}
	builder.SuccessOK(dto.AuditLogsResponse{Logs: logs, Total: total})
}

func parseLogQuery(c *gin.Context) (model.LogQueryOptions, error) {
	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		ActionType: c.Query("action"),
		ClientID:   c.Query("client_id"),
		Level:      c.Query("level"),
	}

	var err error
	if opts.Limit, err = queryInt(c, "limit", defaultAuditLogLimit); err != nil {
		return opts, err
	}
	if opts.Limit <= 0 || opts.Limit > maxAuditLogLimit {
		return opts, &dto.ValidationError{Field: "limit", Message: "must be between 1 and " + strconv.Itoa(maxAuditLogLimit)}
	}
	if opts.Skip, err = queryInt(c, "skip", 0); err != nil {
		return opts, err
	}
	if opts.Skip < 0 {
		return opts, &dto.ValidationError{Field: "skip", Message: "must not be negative"}
	}
	if opts.StartTime, err = queryTime(c, "since"); err != nil {
		return opts, err
	}
	if opts.EndTime, err = queryTime(c, "until"); err != nil {
		return opts, err
	}
	if opts.StartTime != nil && opts.EndTime != nil && opts.EndTime.Before(*opts.StartTime) {
		return opts, &dto.ValidationError{Field: "until", Message: "must not be before since"}
	}
	return opts, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &dto.ValidationError{Field: name, Message: "must be an integer"}
	}
	return v, nil
}

func queryTime(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, &dto.ValidationError{Field: name, Message: "must be an RFC 3339 timestamp"}
	}
	return &t, nil
}

