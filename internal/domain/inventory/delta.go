package inventory

import (
	"sort"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductDelta variación en piezas de un producto (+ abona, - descuenta).
type ProductDelta struct {
	ProductID int64
	Delta     int
}

// MaterialDelta variación de una materia prima. Field es el campo de entrada atribuible.
type MaterialDelta struct {
	Name  string
	Delta decimal.Decimal
	Field string
}

// DeltaMap acumulador product_id -> delta.
type DeltaMap map[int64]int

// Add suma d al producto id.
func (m DeltaMap) Add(id int64, d int) {
	m[id] += d
}

// Sorted devuelve los deltas distintos de cero en orden ascendente de id (orden de bloqueo).
func (m DeltaMap) Sorted() []ProductDelta {
	out := make([]ProductDelta, 0, len(m))
	for id, d := range m {
		if d != 0 {
			out = append(out, ProductDelta{ProductID: id, Delta: d})
		}
	}
	SortProductDeltas(out)
	return out
}

// SortProductDeltas ordena por id ascendente.
func SortProductDeltas(ds []ProductDelta) {
	sort.Slice(ds, func(i, j int) bool { return ds[i].ProductID < ds[j].ProductID })
}

// SortMaterialDeltas ordena por nombre canónico ascendente.
func SortMaterialDeltas(ds []MaterialDelta) {
	sort.Slice(ds, func(i, j int) bool {
		return entity.MaterialKey(ds[i].Name) < entity.MaterialKey(ds[j].Name)
	})
}

// UnionKeys ids presentes en cualquiera de los mapas, ascendentes.
func UnionKeys(maps ...map[int64]int) []int64 {
	seen := make(map[int64]struct{})
	for _, m := range maps {
		for id := range m {
			seen[id] = struct{}{}
		}
	}
	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ProducedByProduct agrega produced_qty por producto.
func ProducedByProduct(items []entity.ProductionItem) map[int64]int {
	out := make(map[int64]int, len(items))
	for _, it := range items {
		out[it.ProductID] += it.ProducedQty
	}
	return out
}
