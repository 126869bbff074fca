package inventory

import "github.com/shopspring/decimal"

// MaterialChange valor antes/después de una materia prima tras aplicar un delta.
type MaterialChange struct {
	Name   string          `json:"name"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
	Delta  decimal.Decimal `json:"delta"`
}

// ProductChange valor antes/después del stock de un producto.
// Applied difiere de Delta cuando el aplicador recortó en cero.
type ProductChange struct {
	ProductID int64  `json:"product_id"`
	Code      string `json:"code"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
	Delta     int    `json:"delta"`
	Applied   int    `json:"applied"`
}

// Effects deltas efectivamente aplicados en una conciliación (para el historial de actividad).
type Effects struct {
	Materials []MaterialChange `json:"materials"`
	Products  []ProductChange  `json:"products"`
}

// IsZero indica que no hubo cambios de stock.
func (e *Effects) IsZero() bool {
	return e == nil || (len(e.Materials) == 0 && len(e.Products) == 0)
}
