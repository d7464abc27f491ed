//go:build integration

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/guttosm/inventory-allocator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type integrationEnv struct {
	router *gin.Engine
	db     *repository.MongoDB
	logs   service.LoggingService
	sink   *middleware.AsyncLogger
}

// setupIntegrationRouter wires the catalog and audit log stores to a MongoDB database
// in the shared container.
func setupIntegrationRouter(t *testing.T) *integrationEnv {
	t.Helper()

	uri, name := testutil.IsolatedDatabase(t)
	db, err := repository.NewMongoDB(uri, name)
	require.NoError(t, err)

	warehouseRepo := repository.NewWarehouseRepositoryWithCircuitBreaker(
		repository.NewWarehouseRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		circuitbreaker.New(circuitbreaker.DefaultConfig()),
	)

	warehouses := service.NewWarehouseService(warehouseRepo)
	logs := service.NewLoggingService(logsRepo)
	sink := middleware.NewAsyncLogger(logs, middleware.AsyncLoggerConfig{FlushInterval: 50 * time.Millisecond})

	allocator := service.NewAllocatorService(
		service.WithCache(100, time.Minute),
		service.WithWarehouseService(warehouses),
	)

	health := NewHealthHandler()
	health.RegisterChecker("mongodb", HealthCheckFunc(db.HealthCheck))

	cfg := RouterConfig{
		RateLimit:        1000,
		RateWindow:       time.Minute,
		RequestTimeout:   10 * time.Second,
		LogSink:          sink,
		WarehouseService: warehouses,
		LoggingService:   logs,
	}
	router := NewRouter(NewHandler(allocator, WithAuditSink(sink)), health, cfg)

	t.Cleanup(func() {
		sink.Stop()
		allocator.Stop()
		_ = db.Close(context.Background())
	})

	return &integrationEnv{router: router, db: db, logs: logs, sink: sink}
}

func TestIntegration_CatalogAllocation(t *testing.T) {
	env := setupIntegrationRouter(t)

	w := doRequest(env.router, http.MethodPost, "/api/allocate/catalog", `{"order": {"apple": 10}}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var empty model.AllocationResult
	decodeData(t, w, &empty)
	assert.False(t, empty.Fulfilled, "empty catalog cannot ship anything")

	w = doRequest(env.router, http.MethodPut, "/api/warehouses", `{"warehouses": [
		{"name": "owd", "inventory": {"apple": 5, "orange": 10}},
		{"name": "dm", "inventory": {"apple": 5, "banana": 5}}]}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var list dto.WarehouseListResponse
	decodeData(t, w, &list)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "owd", list.Warehouses[0].Name)
	assert.Equal(t, 0, list.Warehouses[0].Rank)
	assert.Equal(t, "dm", list.Warehouses[1].Name)

	tests := []struct {
		name          string
		order         string
		wantShipments model.ShipmentPlan
	}{
		{
			name:          "cheapest warehouse alone",
			order:         `{"order": {"orange": 3}}`,
			wantShipments: model.ShipmentPlan{{Warehouse: "owd", Items: model.Items{"orange": 3}}},
		},
		{
			name:  "split",
			order: `{"order": {"apple": 10}}`,
			wantShipments: model.ShipmentPlan{
				{Warehouse: "dm", Items: model.Items{"apple": 5}},
				{Warehouse: "owd", Items: model.Items{"apple": 5}},
			},
		},
		{
			name:          "insufficient",
			order:         `{"order": {"banana": 6}}`,
			wantShipments: model.ShipmentPlan{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(env.router, http.MethodPost, "/api/allocate/catalog", tt.order, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var result model.AllocationResult
			decodeData(t, w, &result)
			assert.Equal(t, tt.wantShipments, result.Shipments)
		})
	}
}

func TestIntegration_WarehouseLifecycle(t *testing.T) {
	env := setupIntegrationRouter(t)

	w := doRequest(env.router, http.MethodPut, "/api/warehouses/owd", `{"inventory": {"apple": 1}}`, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created dto.WarehouseResponse
	decodeData(t, w, &created)
	assert.Equal(t, 0, created.Rank)

	w = doRequest(env.router, http.MethodPut, "/api/warehouses/dm", `{"inventory": {"apple": 2}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var appended dto.WarehouseResponse
	decodeData(t, w, &appended)
	assert.Equal(t, 1, appended.Rank, "new warehouses are appended as the most expensive")

	w = doRequest(env.router, http.MethodPut, "/api/warehouses/owd", `{"inventory": {"apple": 3}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var updated dto.WarehouseResponse
	decodeData(t, w, &updated)
	assert.Equal(t, 0, updated.Rank)
	assert.Greater(t, updated.Version, created.Version)

	w = doRequest(env.router, http.MethodGet, "/api/warehouses/owd", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(env.router, http.MethodDelete, "/api/warehouses/owd", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(env.router, http.MethodGet, "/api/warehouses/owd", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(env.router, http.MethodDelete, "/api/warehouses/owd", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIntegration_AuditTrail(t *testing.T) {
	env := setupIntegrationRouter(t)

	w := doRequest(env.router, http.MethodPost, "/api/allocate",
		`{"order": {"apple": 1}, "warehouses": [{"name": "owd", "inventory": {"apple": 1}}]}`,
		map[string]string{middleware.RequestIDHeader: "audit-trail-1"})
	require.Equal(t, http.StatusOK, w.Code)

	// Drain the async logger so entries are persisted before querying.
	env.sink.Stop()

	entries, err := env.logs.QueryLogs(context.Background(), model.LogQueryOptions{
		RequestID: "audit-trail-1",
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, entries, 2, "request log and allocation audit entry")

	var actions []string
	for _, e := range entries {
		actions = append(actions, e.ActionType)
	}
	assert.Contains(t, actions, middleware.ActionAllocate)

	w = doRequest(env.router, http.MethodGet, "/api/audit-logs?action=allocate&request_id=audit-trail-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var page struct {
		Logs  []model.LogEntry `json:"logs"`
		Total int64            `json:"total"`
	}
	decodeData(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
}

func TestIntegration_Readiness(t *testing.T) {
	env := setupIntegrationRouter(t)

	w := doRequest(env.router, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
}
