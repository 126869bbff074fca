package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// ProductionBatchRepository persistencia de lotes e ítems.
type ProductionBatchRepository interface {
	// Create inserta cabecera e ítems; asigna IDs.
	Create(ctx context.Context, b *entity.ProductionBatch) error
	// LockByID bloquea la cabecera y devuelve el lote con sus ítems. nil si no existe.
	LockByID(ctx context.Context, id int64) (*entity.ProductionBatch, error)
	GetByID(ctx context.Context, id int64) (*entity.ProductionBatch, error)
	UpdateHeader(ctx context.Context, b *entity.ProductionBatch) error
	// ReplaceItems borra todos los ítems del lote e inserta los nuevos.
	ReplaceItems(ctx context.Context, batchID int64, items []entity.ProductionItem) error
	Delete(ctx context.Context, id int64) error
}
