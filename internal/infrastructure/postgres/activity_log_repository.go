package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo historial de actividad (meta en JSONB).
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	meta := []byte(e.Meta)
	if len(meta) == 0 {
		meta = []byte("{}")
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_logs (id, user_id, type, description, meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Type, e.Description, string(meta), e.CreatedAt,
	)
	if err != nil {
		return Classify("insert activity log", err)
	}
	return nil
}

func (r *ActivityLogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id::text, user_id, type, description, meta::text, created_at
		FROM activity_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, Classify("list activity logs", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var (
			e    entity.ActivityLog
			meta string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Description, &meta, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		e.Meta = json.RawMessage(meta)
		list = append(list, &e)
	}
	return list, rows.Err()
}
