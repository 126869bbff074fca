package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// DistributionOrderRepository persistencia de órdenes de distribución e ítems.
type DistributionOrderRepository interface {
	Create(ctx context.Context, o *entity.DistributionOrder) error
	LockByID(ctx context.Context, id int64) (*entity.DistributionOrder, error)
	GetByID(ctx context.Context, id int64) (*entity.DistributionOrder, error)
	UpdateHeader(ctx context.Context, o *entity.DistributionOrder) error
	ReplaceItems(ctx context.Context, orderID int64, items []entity.DistributionItem) error
	Delete(ctx context.Context, id int64) error
}
