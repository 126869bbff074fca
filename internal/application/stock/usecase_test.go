package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/application/stock"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_Idempotent(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	res, err := stock.Seed(ctx, store, stock.DefaultProducts, stock.DefaultMaterials)
	require.NoError(t, err)
	assert.Equal(t, len(stock.DefaultProducts), res.Products)
	assert.Equal(t, 2, res.Materials)

	res, err = stock.Seed(ctx, store, stock.DefaultProducts, stock.DefaultMaterials)
	require.NoError(t, err)
	assert.Zero(t, res.Products)
	assert.Zero(t, res.Materials)

	summary, err := stock.NewUseCase(store).Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Products, len(stock.DefaultProducts))
	require.Len(t, summary.Materials, 2)
	for _, m := range summary.Materials {
		assert.True(t, m.Quantity.IsZero())
	}
}

func TestSummary(t *testing.T) {
	store := memory.New()
	store.AddMaterial(entity.MaterialFlour, decimal.RequireFromString("3.5"))
	store.AddProduct("X12", 64, 128)

	summary, err := stock.NewUseCase(store).Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Materials, 1)
	assert.Equal(t, entity.UnitSack, summary.Materials[0].Unit)
	assert.Equal(t, "3.5", summary.Materials[0].Quantity.StringFixed(1))
	require.Len(t, summary.Products, 1)
	assert.Equal(t, "X12", summary.Products[0].Code)
	assert.Equal(t, 128, summary.Products[0].StockPcs)
}

func TestRecentActivity_NewestFirst(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	for i, typ := range []string{entity.ActivityProductionCreated, entity.ActivityDistributionCreated} {
		at := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
			return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{UserID: "u1", Type: typ, Description: typ}, at)
		}))
	}

	entries, err := stock.NewUseCase(store).RecentActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.ActivityDistributionCreated, entries[0].Type)
	assert.JSONEq(t, "{}", string(entries[0].Meta))
}
