package procurement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/procurement"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_AddsQuantity(t *testing.T) {
	store := memory.New()
	id := store.AddMaterial(entity.MaterialFlour, decimal.RequireFromString("12.5"))
	uc := procurement.NewUseCase(store, logger.Nop())

	resp, err := uc.Register(context.Background(), "admin-1", dto.ProcurementRequest{
		MaterialID: id,
		Qty:        decimal.RequireFromString("7.5"),
		Note:       "proveedor habitual",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.MaterialFlour, resp.Material)
	assert.Equal(t, "20.0", resp.QuantityAfter.StringFixed(1))

	q, _ := store.MaterialQuantity("flour")
	assert.Equal(t, "20.0", q.StringFixed(1))
}

func TestRegister_UnknownMaterial(t *testing.T) {
	uc := procurement.NewUseCase(memory.New(), logger.Nop())
	_, err := uc.Register(context.Background(), "admin-1", dto.ProcurementRequest{MaterialID: 9, Qty: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_RejectsNonPositive(t *testing.T) {
	store := memory.New()
	id := store.AddMaterial(entity.MaterialOil, decimal.NewFromInt(1))
	uc := procurement.NewUseCase(store, logger.Nop())

	for _, qty := range []string{"0", "-2", "0.04"} {
		_, err := uc.Register(context.Background(), "admin-1", dto.ProcurementRequest{MaterialID: id, Qty: decimal.RequireFromString(qty)})
		var ve *domain.ValidationError
		require.True(t, errors.As(err, &ve), "qty %s", qty)
		assert.Contains(t, ve.Fields, "qty")
	}
	q, _ := store.MaterialQuantity(entity.MaterialOil)
	assert.Equal(t, "1.0", q.StringFixed(1))
}
