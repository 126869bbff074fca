package inventory

import (
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductMode cómo se aplican los deltas de producto terminado.
type ProductMode int

const (
	// Clamped: nunca falla, el stock se recorta en 0 (producción, deriva histórica).
	Clamped ProductMode = iota
	// Strict: una deducción que deja stock negativo aborta la transacción (distribución).
	Strict
)

// Campos de entrada a los que se atribuye una falta de stock.
const (
	FieldFlour = "actual_flour_used"
	FieldOil   = "oil_used"
	FieldItems = "items"
)

// Plan efecto neto de un evento de ciclo de vida sobre el Stock Store.
// Materials va ordenado por nombre canónico y Products por id, sin deltas en cero.
type Plan struct {
	Materials []MaterialDelta
	Products  []ProductDelta
	Mode      ProductMode
}

// IsZero indica que el plan no modifica stock.
func (p Plan) IsZero() bool {
	return len(p.Materials) == 0 && len(p.Products) == 0
}

func materialDeltas(flour, oil decimal.Decimal) []MaterialDelta {
	out := make([]MaterialDelta, 0, 2)
	if !flour.IsZero() {
		out = append(out, MaterialDelta{Name: entity.MaterialFlour, Delta: flour, Field: FieldFlour})
	}
	if !oil.IsZero() {
		out = append(out, MaterialDelta{Name: entity.MaterialOil, Delta: oil, Field: FieldOil})
	}
	SortMaterialDeltas(out)
	return out
}

// PlanProductionCreate descuenta harina y aceite y suma las piezas producidas.
func PlanProductionCreate(b *entity.ProductionBatch) Plan {
	products := DeltaMap{}
	for pid, qty := range ProducedByProduct(b.Items) {
		products.Add(pid, qty)
	}
	return Plan{
		Materials: materialDeltas(b.ActualFlourUsed.Round(1).Neg(), b.OilUsed.Round(1).Neg()),
		Products:  products.Sorted(),
		Mode:      Clamped,
	}
}

// PlanProductionUpdate concilia el lote nuevo contra el snapshot previo aplicando solo la diferencia.
// Un mayor consumo descuenta más material; un menor consumo lo devuelve.
func PlanProductionUpdate(prev entity.ProductionSnapshot, b *entity.ProductionBatch) Plan {
	flourDelta := b.ActualFlourUsed.Sub(prev.ActualFlourUsed).Round(1)
	oilDelta := b.OilUsed.Sub(prev.OilUsed).Round(1)

	newMap := ProducedByProduct(b.Items)
	products := DeltaMap{}
	for _, pid := range UnionKeys(newMap, prev.Items) {
		products.Add(pid, newMap[pid]-prev.Items[pid])
	}
	return Plan{
		Materials: materialDeltas(flourDelta.Neg(), oilDelta.Neg()),
		Products:  products.Sorted(),
		Mode:      Clamped,
	}
}

// PlanProductionDelete revierte por completo el efecto del lote.
func PlanProductionDelete(b *entity.ProductionBatch) Plan {
	products := DeltaMap{}
	for pid, qty := range ProducedByProduct(b.Items) {
		products.Add(pid, -qty)
	}
	return Plan{
		Materials: materialDeltas(b.ActualFlourUsed.Round(1), b.OilUsed.Round(1)),
		Products:  products.Sorted(),
		Mode:      Clamped,
	}
}

// PlanDistributionCreate descuenta las cargas agregadas por producto.
func PlanDistributionCreate(o *entity.DistributionOrder) Plan {
	loads, _ := o.Aggregates()
	products := DeltaMap{}
	for pid, qty := range loads {
		products.Add(pid, -qty)
	}
	return Plan{Products: products.Sorted(), Mode: Strict}
}

// PlanDistributionUpdate stockChange = -(newLoad - oldLoad) + (fNew*newReturn - fOld*oldReturn)
// sobre la unión de productos, con fOld/fNew tomados de ReturnFactor.
func PlanDistributionUpdate(prev entity.DistributionSnapshot, o *entity.DistributionOrder) Plan {
	factorOld := ReturnFactor(prev.Status)
	factorNew := ReturnFactor(o.Status)
	newLoads, newReturns := o.Aggregates()

	products := DeltaMap{}
	for _, pid := range UnionKeys(prev.Loads, prev.Returns, newLoads, newReturns) {
		change := -(newLoads[pid] - prev.Loads[pid])
		change += factorNew*newReturns[pid] - factorOld*prev.Returns[pid]
		products.Add(pid, change)
	}
	return Plan{Products: products.Sorted(), Mode: Strict}
}

// PlanDistributionDelete devuelve las cargas y, si la orden estaba completa, retira las devoluciones.
func PlanDistributionDelete(o *entity.DistributionOrder) Plan {
	loads, returns := o.Aggregates()
	factor := ReturnFactor(o.Status)
	products := DeltaMap{}
	for _, pid := range UnionKeys(loads, returns) {
		products.Add(pid, loads[pid]-factor*returns[pid])
	}
	return Plan{Products: products.Sorted(), Mode: Strict}
}
