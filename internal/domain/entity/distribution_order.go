package entity

import "time"

// Estados de una orden de distribución.
const (
	StatusPending  = "pending"
	StatusComplete = "complete"
)

// Locations destinos permitidos.
var Locations = []string{
	"Pasig", "Meycauayan", "Novaliches", "Paco/Blumentritt", "Sto. Niño",
	"Malabon", "Pajo/Polo", "Commonwealth", "Balintawak", "Other",
}

// ValidLocation indica si loc pertenece a Locations.
func ValidLocation(loc string) bool {
	for _, v := range Locations {
		if v == loc {
			return true
		}
	}
	return false
}

// ValidStatus indica si s es pending o complete.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusComplete
}

// DistributionOrder manifiesto de entrega.
type DistributionOrder struct {
	ID           int64
	LoadDate     time.Time
	DispatchDate *time.Time
	Location     string
	Status       string
	CreatedBy    string
	Items        []DistributionItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DistributionItem BoQty es informativo: no afecta stock.
type DistributionItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	LoadQty   int
	ReturnQty int
	BoQty     int
}

// DistributionSnapshot estado previo de una orden (estado + agregados por producto).
type DistributionSnapshot struct {
	Status  string
	Loads   map[int64]int
	Returns map[int64]int
}

// Snapshot agrega load/return por producto del estado persistido.
func (o *DistributionOrder) Snapshot() DistributionSnapshot {
	loads, returns := o.Aggregates()
	return DistributionSnapshot{Status: o.Status, Loads: loads, Returns: returns}
}

// Aggregates suma load_qty y return_qty por producto.
func (o *DistributionOrder) Aggregates() (loads, returns map[int64]int) {
	loads = make(map[int64]int, len(o.Items))
	returns = make(map[int64]int, len(o.Items))
	for _, it := range o.Items {
		loads[it.ProductID] += it.LoadQty
		returns[it.ProductID] += it.ReturnQty
	}
	return loads, returns
}

// ProductIDs ids referenciados por los ítems, sin repetir.
func (o *DistributionOrder) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(o.Items))
	ids := make([]int64, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
