package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// RawMaterialResponse existencia de una materia prima.
type RawMaterialResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// ProductStockResponse existencia de un producto terminado.
type ProductStockResponse struct {
	ID           int64  `json:"id"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	YieldPerSack int    `json:"yield_per_sack"`
	StockPcs     int    `json:"stock_pcs"`
}

// StockSummaryResponse GET /api/inventory/stock.
type StockSummaryResponse struct {
	Materials []RawMaterialResponse  `json:"materials"`
	Products  []ProductStockResponse `json:"products"`
}

// ActivityLogResponse entrada del historial.
type ActivityLogResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Meta        json.RawMessage `json:"meta,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
