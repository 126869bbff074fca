package dto

import (
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// ProductionItemRequest ítem de un lote.
type ProductionItemRequest struct {
	ProductID   int64 `json:"product_id" validate:"required,gt=0"`
	ProducedQty int   `json:"produced_qty" validate:"gte=0"`
}

// ProductionBatchRequest body de POST/PUT /api/production-batches.
type ProductionBatchRequest struct {
	Set             string                  `json:"set" validate:"required,batchset"`
	Date            string                  `json:"date" validate:"required,datetime=2006-01-02"`
	ActualFlourUsed decimal.Decimal         `json:"actual_flour_used" validate:"gte=0,lt=1000,onedecimal"`
	OilUsed         decimal.Decimal         `json:"oil_used" validate:"gte=0,lt=1000,onedecimal"`
	Items           []ProductionItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ProductionItemResponse ítem persistido.
type ProductionItemResponse struct {
	ProductID   int64 `json:"product_id"`
	ProducedQty int   `json:"produced_qty"`
}

// ProductionBatchResponse lote con los efectos de stock de la última operación.
type ProductionBatchResponse struct {
	ID              int64                    `json:"id"`
	Set             string                   `json:"set"`
	Date            string                   `json:"date"`
	ExpectedYield   decimal.Decimal          `json:"expected_yield"`
	ActualFlourUsed decimal.Decimal          `json:"actual_flour_used"`
	OilUsed         decimal.Decimal          `json:"oil_used"`
	Items           []ProductionItemResponse `json:"items"`
	Effects         *inventory.Effects       `json:"effects,omitempty"`
}
