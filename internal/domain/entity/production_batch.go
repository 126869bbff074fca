package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchSets líneas de producción permitidas.
var BatchSets = []string{"A", "B", "C", "D", "E"}

// ValidBatchSet indica si s pertenece a BatchSets.
func ValidBatchSet(s string) bool {
	for _, v := range BatchSets {
		if v == s {
			return true
		}
	}
	return false
}

// ProductionBatch corrida de producción: consume harina/aceite y produce piezas.
type ProductionBatch struct {
	ID              int64
	Set             string
	Date            time.Time
	ExpectedYield   decimal.Decimal // Σ produced_qty / yield_per_sack, 1 decimal
	ActualFlourUsed decimal.Decimal
	OilUsed         decimal.Decimal
	CreatedBy       string
	Items           []ProductionItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ProductionItem fila de un lote. Los ítems se reemplazan siempre como conjunto.
type ProductionItem struct {
	ID          int64
	BatchID     int64
	ProductID   int64
	ProducedQty int
}

// ProductionSnapshot estado previo de un lote, capturado antes de cualquier modificación.
type ProductionSnapshot struct {
	ActualFlourUsed decimal.Decimal
	OilUsed         decimal.Decimal
	Items           map[int64]int // product_id -> produced_qty agregado
}

// Snapshot captura el efecto persistido actual del lote.
func (b *ProductionBatch) Snapshot() ProductionSnapshot {
	items := make(map[int64]int, len(b.Items))
	for _, it := range b.Items {
		items[it.ProductID] += it.ProducedQty
	}
	return ProductionSnapshot{
		ActualFlourUsed: b.ActualFlourUsed,
		OilUsed:         b.OilUsed,
		Items:           items,
	}
}

// ProductIDs ids referenciados por los ítems, sin repetir.
func (b *ProductionBatch) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(b.Items))
	ids := make([]int64, 0, len(b.Items))
	for _, it := range b.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
