package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// ProductRepository mitad "producto terminado" del Stock Store.
type ProductRepository interface {
	// LockByID bloquea la fila del producto. nil si no existe.
	LockByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// ListByIDs lectura sin bloqueo (ratios de rendimiento, validación de referencias).
	ListByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Product, error)
	UpdateStock(ctx context.Context, id int64, stockPcs int) error
	Create(ctx context.Context, p *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
}
