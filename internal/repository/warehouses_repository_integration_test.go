//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/inventory-allocator/internal/circuitbreaker"
	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(docs []WarehouseDocument) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name
	}
	return out
}

func TestWarehouseRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)

	repo := NewWarehouseRepository(db)

	t.Run("empty catalog", func(t *testing.T) {
		docs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)

		doc, err := repo.Get(ctx, "owd")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("replace all keeps the given order", func(t *testing.T) {
		docs, err := repo.ReplaceAll(ctx, []model.Warehouse{
			{Name: "owd", Inventory: model.Items{"apple": 5}},
			{Name: "dm", Inventory: model.Items{"apple": 5, "a.b": 1}},
		}, "seed")
		require.NoError(t, err)
		assert.Equal(t, []string{"owd", "dm"}, names(docs))
		assert.Equal(t, model.Items{"apple": 5, "a.b": 1}, docs[1].Items())
		assert.Equal(t, 1, docs[0].Version)
	})

	t.Run("upsert existing keeps rank and bumps version", func(t *testing.T) {
		doc, err := repo.Upsert(ctx, "owd", map[string]int{"apple": 7}, "ops")
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Rank)
		assert.Equal(t, 2, doc.Version)
		assert.Equal(t, "ops", doc.UpdatedBy)
		assert.Equal(t, model.Items{"apple": 7}, doc.Items())
	})

	t.Run("upsert new appends to the cost order", func(t *testing.T) {
		doc, err := repo.Upsert(ctx, "east", map[string]int{"pear": 3}, "ops")
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Rank)

		docs, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"owd", "dm", "east"}, names(docs))
	})

	t.Run("delete deactivates", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "dm", "ops")
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "dm", "ops")
		require.NoError(t, err)
		assert.False(t, deleted)

		doc, err := repo.Get(ctx, "dm")
		require.NoError(t, err)
		assert.Nil(t, doc)
	})

	t.Run("replace all deactivates missing warehouses and reorders", func(t *testing.T) {
		docs, err := repo.ReplaceAll(ctx, []model.Warehouse{
			{Name: "east", Inventory: model.Items{"pear": 1}},
			{Name: "dm", Inventory: model.Items{"apple": 1}},
		}, "ops")
		require.NoError(t, err)
		assert.Equal(t, []string{"east", "dm"}, names(docs))

		owd, err := repo.Get(ctx, "owd")
		require.NoError(t, err)
		assert.Nil(t, owd)
	})

	t.Run("replace all with empty list clears the catalog", func(t *testing.T) {
		docs, err := repo.ReplaceAll(ctx, []model.Warehouse{}, "ops")
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestWarehouseRepositoryWithCircuitBreaker_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)

	cb := circuitbreaker.New(circuitbreaker.DefaultConfig())
	repo := NewWarehouseRepositoryWithCircuitBreaker(NewWarehouseRepository(db), cb)

	_, err := repo.Upsert(ctx, "owd", map[string]int{"apple": 1}, "test")
	require.NoError(t, err)

	docs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.True(t, cb.GetStats().IsHealthy)
}
