package postgres

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
)

var _ repository.ProcurementRepository = (*ProcurementRepo)(nil)

// ProcurementRepo registro de compras de materia prima.
type ProcurementRepo struct {
	q Querier
}

// NewProcurementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProcurementRepository(q Querier) *ProcurementRepo {
	return &ProcurementRepo{q: q}
}

func (r *ProcurementRepo) Create(ctx context.Context, p *entity.Procurement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO procurements (material_id, qty, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		p.MaterialID, p.Qty, p.Note, p.UserID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return Classify("insert procurement", err)
	}
	return nil
}
