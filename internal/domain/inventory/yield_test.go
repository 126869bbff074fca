package inventory_test

import (
	"testing"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/inventory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeYield(t *testing.T) {
	tests := []struct {
		name string
		rows []inventory.YieldRow
		want string
	}{
		{"suma de ratios", []inventory.YieldRow{{Quantity: 120, Ratio: 40}, {Quantity: 58, Ratio: 29}}, "5"},
		{"ratio inválido se ignora", []inventory.YieldRow{{Quantity: 80, Ratio: 40}, {Quantity: 10, Ratio: 0}, {Quantity: 5, Ratio: -3}}, "2"},
		{"vacío", nil, "0"},
		{"redondeo a un decimal", []inventory.YieldRow{{Quantity: 10, Ratio: 3}}, "3.3"},
		{"half away from zero", []inventory.YieldRow{{Quantity: 1, Ratio: 20}}, "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.ComputeYield(tt.rows)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestExpectedFlourYield_MissingRatio(t *testing.T) {
	items := []entity.ProductionItem{{ProductID: 1, ProducedQty: 120}, {ProductID: 2, ProducedQty: 50}}
	got := inventory.ExpectedFlourYield(items, map[int64]int{1: 40})
	assert.Equal(t, "3.0", got.StringFixed(1))
}

func TestLoadAndReturnYield(t *testing.T) {
	items := []entity.DistributionItem{
		{ProductID: 1, LoadQty: 80, ReturnQty: 20},
		{ProductID: 2, LoadQty: 29, ReturnQty: 0},
	}
	ratios := inventory.Ratios(map[int64]*entity.Product{
		1: {ID: 1, YieldPerSack: 40},
		2: {ID: 2, YieldPerSack: 29},
	})
	assert.Equal(t, "3.0", inventory.LoadYield(items, ratios).StringFixed(1))
	assert.Equal(t, "0.5", inventory.ReturnYield(items, ratios).StringFixed(1))
}
