package dto

import "github.com/shopspring/decimal"

// ProcurementRequest body de POST /api/procurements.
type ProcurementRequest struct {
	MaterialID int64           `json:"material_id" validate:"required,gt=0"`
	Qty        decimal.Decimal `json:"qty" validate:"gt=0"`
	Note       string          `json:"note" validate:"max=255"`
}

// ProcurementResponse compra registrada y cantidad resultante.
type ProcurementResponse struct {
	ID            int64           `json:"id"`
	MaterialID    int64           `json:"material_id"`
	Material      string          `json:"material"`
	Qty           decimal.Decimal `json:"qty"`
	QuantityAfter decimal.Decimal `json:"quantity_after"`
}
