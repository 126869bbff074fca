package inventory

import (
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// YieldRow cantidad en piezas y ratio de conversión (piezas por saco) de un ítem.
type YieldRow struct {
	Quantity int
	Ratio    int
}

// ComputeYield calcula Σ quantity/ratio redondeado a 1 decimal.
// Filas con ratio <= 0 se ignoran. El redondeo es half away from zero (decimal.Round).
func ComputeYield(rows []YieldRow) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range rows {
		if r.Ratio <= 0 {
			continue
		}
		sum = sum.Add(decimal.NewFromInt(int64(r.Quantity)).Div(decimal.NewFromInt(int64(r.Ratio))))
	}
	return sum.Round(1)
}

// ExpectedFlourYield rendimiento esperado de un lote (sacos) a partir de produced_qty.
func ExpectedFlourYield(items []entity.ProductionItem, ratios map[int64]int) decimal.Decimal {
	rows := make([]YieldRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, YieldRow{Quantity: it.ProducedQty, Ratio: ratios[it.ProductID]})
	}
	return ComputeYield(rows)
}

// LoadYield sacos equivalentes cargados en una orden.
func LoadYield(items []entity.DistributionItem, ratios map[int64]int) decimal.Decimal {
	rows := make([]YieldRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, YieldRow{Quantity: it.LoadQty, Ratio: ratios[it.ProductID]})
	}
	return ComputeYield(rows)
}

// ReturnYield sacos equivalentes devueltos en una orden.
func ReturnYield(items []entity.DistributionItem, ratios map[int64]int) decimal.Decimal {
	rows := make([]YieldRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, YieldRow{Quantity: it.ReturnQty, Ratio: ratios[it.ProductID]})
	}
	return ComputeYield(rows)
}

// Ratios extrae yield_per_sack por id de producto.
func Ratios(products map[int64]*entity.Product) map[int64]int {
	out := make(map[int64]int, len(products))
	for id, p := range products {
		out[id] = p.YieldPerSack
	}
	return out
}
