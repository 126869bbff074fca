package entity

import (
	"strings"
	"time"
)

// Product producto terminado. YieldPerSack: piezas por unidad de materia prima.
// Invariante: StockPcs >= 0.
type Product struct {
	ID           int64
	Code         string // derivado del nombre en mayúsculas
	Name         string
	YieldPerSack int
	StockPcs     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductCode deriva el código del nombre ("x12 " -> "X12").
func ProductCode(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewProduct construye un producto con su código derivado.
func NewProduct(name string, yieldPerSack, stockPcs int, now time.Time) *Product {
	return &Product{
		Code:         ProductCode(name),
		Name:         strings.TrimSpace(name),
		YieldPerSack: yieldPerSack,
		StockPcs:     stockPcs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
