package http

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/domain/dto"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/guttosm/inventory-allocator/internal/middleware"
	"github.com/guttosm/inventory-allocator/internal/mocks"
	"github.com/guttosm/inventory-allocator/internal/repository"
	"github.com/guttosm/inventory-allocator/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// setupWarehouseRouter mounts the catalog handlers behind a stub that authenticates
// every request as the "ops" client.
func setupWarehouseRouter(t *testing.T, limits dto.Limits) (*gin.Engine, *mocks.MockWarehouseService, *recordingSink) {
	t.Helper()
	ws := &mocks.MockWarehouseService{}
	t.Cleanup(func() { ws.AssertExpectations(t) })
	sink := &recordingSink{}

	router := gin.New()
	router.Use(middleware.RequestID(), func(c *gin.Context) {
		middleware.SetClaims(c, &dto.Claims{ClientID: "ops"})
		c.Next()
	})
	api := router.Group("/api")
	NewWarehouseRoutes(NewWarehouseHandler(ws, limits, sink)).RegisterRoutes(api, &RouterConfig{})
	return router, ws, sink
}

func warehouseDoc(name string, rank int, stock ...repository.StockLine) repository.WarehouseDocument {
	return repository.WarehouseDocument{
		Name:      name,
		Rank:      rank,
		Inventory: stock,
		Active:    true,
		Version:   1,
		UpdatedAt: time.Date(2025, 1, 28, 10, 0, 0, 0, time.UTC),
		UpdatedBy: "ops",
	}
}

func TestWarehouseHandler_List(t *testing.T) {
	tests := []struct {
		name       string
		docs       []repository.WarehouseDocument
		err        error
		wantStatus int
		wantNames  []string
	}{
		{
			name: "cost ordered catalog",
			docs: []repository.WarehouseDocument{
				warehouseDoc("owd", 0, repository.StockLine{Item: "apple", Quantity: 5}),
				warehouseDoc("dm", 1, repository.StockLine{Item: "apple", Quantity: 5}),
			},
			wantStatus: http.StatusOK,
			wantNames:  []string{"owd", "dm"},
		},
		{
			name:       "empty catalog",
			docs:       []repository.WarehouseDocument{},
			wantStatus: http.StatusOK,
			wantNames:  []string{},
		},
		{
			name:       "catalog not configured",
			err:        service.ErrRepositoryNotConfigured,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "storage failure",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ws, _ := setupWarehouseRouter(t, dto.Limits{})
			if tt.err != nil {
				ws.On("List", mock.Anything).Return(nil, tt.err).Once()
			} else {
				ws.On("List", mock.Anything).Return(tt.docs, nil).Once()
			}

			w := doRequest(router, http.MethodGet, "/api/warehouses", "", nil)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				return
			}

			var list dto.WarehouseListResponse
			decodeData(t, w, &list)
			assert.Equal(t, len(tt.wantNames), list.Count)
			names := make([]string, 0, len(list.Warehouses))
			for i, wh := range list.Warehouses {
				names = append(names, wh.Name)
				assert.Equal(t, i, wh.Rank)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestWarehouseHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		router, ws, _ := setupWarehouseRouter(t, dto.Limits{})
		doc := warehouseDoc("owd", 0,
			repository.StockLine{Item: "apple", Quantity: 5},
			repository.StockLine{Item: "orange", Quantity: 10},
		)
		ws.On("Get", mock.Anything, "owd").Return(&doc, nil).Once()

		w := doRequest(router, http.MethodGet, "/api/warehouses/owd", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var got dto.WarehouseResponse
		decodeData(t, w, &got)
		assert.Equal(t, "owd", got.Name)
		assert.Equal(t, map[string]int{"apple": 5, "orange": 10}, got.Inventory)
		assert.Equal(t, "ops", got.UpdatedBy)
	})

	t.Run("not found", func(t *testing.T) {
		router, ws, _ := setupWarehouseRouter(t, dto.Limits{})
		ws.On("Get", mock.Anything, "nowhere").Return(nil, service.ErrWarehouseNotFound).Once()

		w := doRequest(router, http.MethodGet, "/api/warehouses/nowhere", "", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeNotFound, decodeError(t, w).Error)
	})
}

func TestWarehouseHandler_Replace(t *testing.T) {
	t.Run("replaces catalog in list order", func(t *testing.T) {
		router, ws, sink := setupWarehouseRouter(t, dto.Limits{})
		want := []model.Warehouse{
			{Name: "owd", Inventory: model.Items{"apple": 5}},
			{Name: "dm", Inventory: model.Items{"apple": 5}},
		}
		ws.On("ReplaceAll", mock.Anything, want, "ops").Return([]repository.WarehouseDocument{
			warehouseDoc("owd", 0, repository.StockLine{Item: "apple", Quantity: 5}),
			warehouseDoc("dm", 1, repository.StockLine{Item: "apple", Quantity: 5}),
		}, nil).Once()

		w := doRequest(router, http.MethodPut, "/api/warehouses", `{"warehouses": [
			{"name": "owd", "inventory": {"apple": 5}},
			{"name": "dm", "inventory": {"apple": 5}}]}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var list dto.WarehouseListResponse
		decodeData(t, w, &list)
		assert.Equal(t, 2, list.Count)
		assert.Equal(t, []string{middleware.ActionReplaceWarehouses}, sink.actions())
		assert.Equal(t, "ops", sink.entries[0].ClientID)
	})

	t.Run("duplicate names rejected", func(t *testing.T) {
		router, _, sink := setupWarehouseRouter(t, dto.Limits{})

		w := doRequest(router, http.MethodPut, "/api/warehouses", `{"warehouses": [
			{"name": "owd", "inventory": {}},
			{"name": "owd", "inventory": {}}]}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "warehouses[1].name", decodeError(t, w).Details["field"])
		assert.Empty(t, sink.actions())
	})

	t.Run("too many warehouses", func(t *testing.T) {
		router, _, _ := setupWarehouseRouter(t, dto.Limits{MaxWarehouses: 1})

		w := doRequest(router, http.MethodPut, "/api/warehouses", `{"warehouses": [
			{"name": "owd", "inventory": {}},
			{"name": "dm", "inventory": {}}]}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("circuit open", func(t *testing.T) {
		router, ws, sink := setupWarehouseRouter(t, dto.Limits{})
		ws.On("ReplaceAll", mock.Anything, mock.Anything, "ops").Return(nil, circuitbreaker.ErrCircuitOpen).Once()

		w := doRequest(router, http.MethodPut, "/api/warehouses", `{"warehouses": []}`, nil)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, dto.ErrCodeUnavailable, decodeError(t, w).Error)
		require.Len(t, sink.entries, 1)
		assert.Equal(t, "error", sink.entries[0].Level)
	})
}

func TestWarehouseHandler_Upsert(t *testing.T) {
	t.Run("updates inventory", func(t *testing.T) {
		router, ws, sink := setupWarehouseRouter(t, dto.Limits{})
		doc := warehouseDoc("owd", 0, repository.StockLine{Item: "apple", Quantity: 7})
		doc.Version = 2
		ws.On("Upsert", mock.Anything, "owd", map[string]int{"apple": 7}, "ops").Return(&doc, nil).Once()

		w := doRequest(router, http.MethodPut, "/api/warehouses/owd", `{"inventory": {"apple": 7}}`, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var got dto.WarehouseResponse
		decodeData(t, w, &got)
		assert.Equal(t, 2, got.Version)
		assert.Equal(t, []string{middleware.ActionUpsertWarehouse}, sink.actions())
	})

	t.Run("blank name", func(t *testing.T) {
		router, _, _ := setupWarehouseRouter(t, dto.Limits{})

		w := doRequest(router, http.MethodPut, "/api/warehouses/%20", `{"inventory": {"apple": 7}}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "name", decodeError(t, w).Details["field"])
	})

	t.Run("missing inventory", func(t *testing.T) {
		router, _, _ := setupWarehouseRouter(t, dto.Limits{})

		w := doRequest(router, http.MethodPut, "/api/warehouses/owd", `{}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "inventory", decodeError(t, w).Details["field"])
	})

	t.Run("negative stock", func(t *testing.T) {
		router, _, _ := setupWarehouseRouter(t, dto.Limits{})

		w := doRequest(router, http.MethodPut, "/api/warehouses/owd", `{"inventory": {"apple": -1}}`, nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "inventory.apple", decodeError(t, w).Details["field"])
	})
}

func TestWarehouseHandler_Delete(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "deleted", wantStatus: http.StatusOK},
		{name: "not found", err: service.ErrWarehouseNotFound, wantStatus: http.StatusNotFound},
		{name: "catalog not configured", err: service.ErrCatalogNotConfigured, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ws, sink := setupWarehouseRouter(t, dto.Limits{})
			ws.On("Delete", mock.Anything, "dm", "ops").Return(tt.err).Once()

			w := doRequest(router, http.MethodDelete, "/api/warehouses/dm", "", nil)
			require.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, []string{middleware.ActionDeleteWarehouse}, sink.actions())

			if tt.err == nil {
				var got map[string]string
				envelope := decodeData(t, w, &got)
				assert.Equal(t, "dm", got["name"])
				assert.Equal(t, "Warehouse removed from the catalog", envelope.Message)
			}
		})
	}
}
