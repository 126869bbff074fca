package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// ActivityLogRepository historial de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *entity.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error)
}
