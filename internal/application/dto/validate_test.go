package dto_test

import (
	"errors"
	"testing"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBatch() dto.ProductionBatchRequest {
	return dto.ProductionBatchRequest{
		Set:             "E",
		Date:            "2026-02-28",
		ActualFlourUsed: decimal.RequireFromString("999.9"),
		OilUsed:         decimal.Zero,
		Items:           []dto.ProductionItemRequest{{ProductID: 1, ProducedQty: 0}},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "se esperaba ValidationError, got %v", err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	return ve.Fields
}

func TestValidate_ProductionBatch(t *testing.T) {
	require.NoError(t, dto.Validate(validBatch()))

	tests := []struct {
		name   string
		mutate func(*dto.ProductionBatchRequest)
		field  string
	}{
		{"set fuera de rango", func(r *dto.ProductionBatchRequest) { r.Set = "F" }, "set"},
		{"fecha inválida", func(r *dto.ProductionBatchRequest) { r.Date = "28/02/2026" }, "date"},
		{"dos decimales", func(r *dto.ProductionBatchRequest) { r.OilUsed = decimal.RequireFromString("0.25") }, "oil_used"},
		{"negativo", func(r *dto.ProductionBatchRequest) { r.ActualFlourUsed = decimal.NewFromInt(-1) }, "actual_flour_used"},
		{"tope 1000", func(r *dto.ProductionBatchRequest) { r.ActualFlourUsed = decimal.NewFromInt(1000) }, "actual_flour_used"},
		{"sin ítems", func(r *dto.ProductionBatchRequest) { r.Items = nil }, "items"},
		{"producto 0", func(r *dto.ProductionBatchRequest) { r.Items[0].ProductID = 0 }, "items[0].product_id"},
		{"cantidad negativa", func(r *dto.ProductionBatchRequest) { r.Items[0].ProducedQty = -3 }, "items[0].produced_qty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBatch()
			tt.mutate(&in)
			assert.Contains(t, fieldsOf(t, dto.Validate(in)), tt.field)
		})
	}
}

func TestValidate_DistributionOrder(t *testing.T) {
	in := dto.UpdateDistributionOrderRequest{
		LoadDate: "2026-02-28",
		Location: "Paco/Blumentritt",
		Status:   "complete",
		Items:    []dto.DistributionItemRequest{{ProductID: 1, LoadQty: 10, ReturnQty: 10, BoQty: 2}},
	}
	require.NoError(t, dto.Validate(in))

	in.Status = "cancelled"
	in.Items[0].ReturnQty = 11
	fields := fieldsOf(t, dto.Validate(in))
	assert.Contains(t, fields, "status")
	assert.Equal(t, "la devolución no puede exceder la carga", fields["items[0].return_qty"])
}

func TestValidate_Procurement(t *testing.T) {
	assert.NoError(t, dto.Validate(dto.ProcurementRequest{MaterialID: 1, Qty: decimal.RequireFromString("2.5")}))
	fields := fieldsOf(t, dto.Validate(dto.ProcurementRequest{MaterialID: 0, Qty: decimal.Zero}))
	assert.Contains(t, fields, "material_id")
	assert.Contains(t, fields, "qty")
}
