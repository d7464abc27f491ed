package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuditLogRouter(t *testing.T) (*gin.Engine, *mocks.MockLoggingService) {
	t.Helper()
	logs := &mocks.MockLoggingService{}
	t.Cleanup(func() { logs.AssertExpectations(t) })

	router := gin.New()
	router.Use(middleware.RequestID())
	NewAuditLogRoutes(NewAuditLogHandler(logs)).RegisterRoutes(router.Group("/api"), &RouterConfig{})
	return router, logs
}

func TestAuditLogHandler_Query(t *testing.T) {
	since := time.Date(2025, 1, 28, 0, 0, 0, 0, time.UTC)
	until := since.Add(24 * time.Hour)

	tests := []struct {
		name     string
		query    string
		wantOpts model.LogQueryOptions
	}{
		{
			name:     "defaults",
			query:    "",
			wantOpts: model.LogQueryOptions{Limit: 50},
		},
		{
			name:  "filters",
			query: "?action=allocate&client_id=ops&level=error&request_id=req-1&limit=10&skip=20",
			wantOpts: model.LogQueryOptions{
				ActionType: "allocate",
				ClientID:   "ops",
				Level:      "error",
				RequestID:  "req-1",
				Limit:      10,
				Skip:       20,
			},
		},
		{
			name:     "time range",
			query:    "?since=2025-01-28T00:00:00Z&until=2025-01-29T00:00:00Z",
			wantOpts: model.LogQueryOptions{Limit: 50, StartTime: &since, EndTime: &until},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, logs := setupAuditLogRouter(t)
			entries := []model.LogEntry{{Level: "info", Message: "Order allocated", ActionType: "allocate", ClientID: "ops"}}
			logs.On("QueryLogs", mock.Anything, tt.wantOpts).Return(entries, nil).Once()
			logs.On("CountLogs", mock.Anything, tt.wantOpts).Return(int64(42), nil).Once()

			w := doRequest(router, http.MethodGet, "/api/audit-logs"+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var got struct {
				Logs  []model.LogEntry `json:"logs"`
				Total int64            `json:"total"`
			}
			decodeData(t, w, &got)
			assert.Equal(t, int64(42), got.Total)
			require.Len(t, got.Logs, 1)
			assert.Equal(t, "allocate", got.Logs[0].ActionType)
		})
	}
}

func TestAuditLogHandler_Query_EmptyResult(t *testing.T) {
	router, logs := setupAuditLogRouter(t)
	logs.On("QueryLogs", mock.Anything, mock.Anything).Return(nil, nil).Once()
	logs.On("CountLogs", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

	w := doRequest(router, http.MethodGet, "/api/audit-logs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"logs":[]`)
}

func TestAuditLogHandler_Query_InvalidParameters(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantField string
	}{
		{name: "limit not a number", query: "?limit=ten", wantField: "limit"},
		{name: "limit too large", query: "?limit=501", wantField: "limit"},
		{name: "limit zero", query: "?limit=0", wantField: "limit"},
		{name: "negative skip", query: "?skip=-1", wantField: "skip"},
		{name: "since not RFC 3339", query: "?since=yesterday", wantField: "since"},
		{name: "until before since", query: "?since=2025-01-29T00:00:00Z&until=2025-01-28T00:00:00Z", wantField: "until"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupAuditLogRouter(t)

			w := doRequest(router, http.MethodGet, "/api/audit-logs"+tt.query, "", nil)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantField, decodeError(t, w).Details["field"])
		})
	}
}

func TestAuditLogHandler_Query_StorageErrors(t *testing.T) {
	t.Run("query fails", func(t *testing.T) {
		router, logs := setupAuditLogRouter(t)
		logs.On("QueryLogs", mock.Anything, mock.Anything).Return(nil, errors.New("boom")).Once()

		w := doRequest(router, http.MethodGet, "/api/audit-logs", "", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, dto.ErrCodeInternal, decodeError(t, w).Error)
	})

	t.Run("count fails", func(t *testing.T) {
		router, logs := setupAuditLogRouter(t)
		logs.On("QueryLogs", mock.Anything, mock.Anything).Return([]model.LogEntry{}, nil).Once()
		logs.On("CountLogs", mock.Anything, mock.Anything).Return(int64(0), errors.New("boom")).Once()

		w := doRequest(router, http.MethodGet, "/api/audit-logs", "", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
