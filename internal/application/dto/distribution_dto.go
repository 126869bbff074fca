package dto

import (
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/shopspring/decimal"
)

// DistributionItemRequest ítem de una orden. ReturnQty <= LoadQty.
type DistributionItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	LoadQty   int   `json:"load_qty" validate:"gte=0"`
	ReturnQty int   `json:"return_qty" validate:"gte=0,ltefield=LoadQty"`
	BoQty     int   `json:"bo_qty" validate:"gte=0"`
}

// CreateDistributionOrderRequest body de POST /api/distribution-orders.
type CreateDistributionOrderRequest struct {
	LoadDate     string                    `json:"load_date" validate:"required,datetime=2006-01-02"`
	DispatchDate *string                   `json:"dispatch_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location     string                    `json:"location" validate:"required,location"`
	Items        []DistributionItemRequest `json:"items" validate:"required,dive"`
}

// UpdateDistributionOrderRequest body de PUT /api/distribution-orders/:id.
type UpdateDistributionOrderRequest struct {
	LoadDate     string                    `json:"load_date" validate:"required,datetime=2006-01-02"`
	DispatchDate *string                   `json:"dispatch_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Location     string                    `json:"location" validate:"required,location"`
	Status       string                    `json:"status" validate:"required,orderstatus"`
	Items        []DistributionItemRequest `json:"items" validate:"required,dive"`
}

// DistributionItemResponse ítem persistido.
type DistributionItemResponse struct {
	ProductID int64 `json:"product_id"`
	LoadQty   int   `json:"load_qty"`
	ReturnQty int   `json:"return_qty"`
	BoQty     int   `json:"bo_qty"`
}

// DistributionOrderResponse orden con rendimientos en sacos y efectos de stock.
type DistributionOrderResponse struct {
	ID           int64                      `json:"id"`
	LoadDate     string                     `json:"load_date"`
	DispatchDate *string                    `json:"dispatch_date,omitempty"`
	Location     string                     `json:"location"`
	Status       string                     `json:"status"`
	LoadYield    decimal.Decimal            `json:"load_yield"`
	ReturnYield  decimal.Decimal            `json:"return_yield"`
	Items        []DistributionItemResponse `json:"items"`
	Effects      *inventory.Effects         `json:"effects,omitempty"`
}
