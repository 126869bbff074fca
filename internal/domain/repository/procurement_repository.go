package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// ProcurementRepository registro de compras de materia prima.
type ProcurementRepository interface {
	Create(ctx context.Context, p *entity.Procurement) error
}
