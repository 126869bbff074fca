package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	stock "github.com/jhoicas/inventario-produccion/internal/domain/inventory"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMaterialLedger_ApplyDelta(t *testing.T) {
	store := memory.New()
	store.AddMaterial(entity.MaterialFlour, dec("10"))
	ctx := context.Background()

	t.Run("case-insensitive", func(t *testing.T) {
		var ch inventory.MaterialChange
		err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
			var err error
			ch, err = inventory.NewMaterialLedger(s.Materials, nil).ApplyDelta(ctx, "FLOUR", dec("-2.5"))
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, "Flour", ch.Name)
		assert.Equal(t, "7.5", ch.After.StringFixed(1))
	})

	t.Run("material inexistente con delta negativo", func(t *testing.T) {
		err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
			_, err := inventory.NewMaterialLedger(s.Materials, nil).ApplyDelta(ctx, "sugar", dec("-1"))
			return err
		})
		var ise *domain.InsufficientStockError
		require.True(t, errors.As(err, &ise))
		assert.Equal(t, "Sugar", ise.Subject)
		assert.True(t, ise.Available.IsZero())
		_, ok := store.MaterialQuantity("sugar")
		assert.False(t, ok)
	})

	t.Run("material inexistente con delta positivo se crea", func(t *testing.T) {
		err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
			_, err := inventory.NewMaterialLedger(s.Materials, nil).ApplyDelta(ctx, "oil", dec("4"))
			return err
		})
		require.NoError(t, err)
		q, ok := store.MaterialQuantity(entity.MaterialOil)
		require.True(t, ok)
		assert.Equal(t, "4.0", q.StringFixed(1))
	})

	t.Run("exacto a cero", func(t *testing.T) {
		err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
			_, err := inventory.NewMaterialLedger(s.Materials, nil).ApplyDelta(ctx, entity.MaterialFlour, dec("-7.5"))
			return err
		})
		require.NoError(t, err)
		q, _ := store.MaterialQuantity(entity.MaterialFlour)
		assert.True(t, q.IsZero())
	})
}

func TestFinishedGoods_ClampedIgnoresMissingProduct(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		ch, err := inventory.NewFinishedGoods(s.Products).ApplyClamped(ctx, 404, -10)
		assert.Nil(t, ch)
		return err
	})
	assert.NoError(t, err)
}

func TestEngine_StrictPlanStopsAtFirstFailure(t *testing.T) {
	store := memory.New()
	a := store.AddProduct("A", 10, 5)
	b := store.AddProduct("B", 10, 1)
	ctx := context.Background()

	err := store.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		_, err := inventory.NewEngine(nil).Apply(ctx, s, stock.Plan{
			Products: []stock.ProductDelta{{ProductID: b, Delta: -2}, {ProductID: a, Delta: -5}},
			Mode:     stock.Strict,
		})
		return err
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	sa, _ := store.ProductStock(a)
	sb, _ := store.ProductStock(b)
	assert.Equal(t, 5, sa)
	assert.Equal(t, 1, sb)
}
