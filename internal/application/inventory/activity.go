package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
)

// Activity datos de una entrada del historial. Meta se serializa a JSON; nil queda como {}.
type Activity struct {
	UserID      string
	Type        string
	Description string
	Meta        any
}

// RecordActivity inserta la entrada en la misma transacción que la conciliación,
// de modo que historial y stock se confirman o descartan juntos.
func RecordActivity(ctx context.Context, repo repository.ActivityLogRepository, a Activity, now time.Time) error {
	meta := json.RawMessage("{}")
	if a.Meta != nil {
		raw, err := json.Marshal(a.Meta)
		if err != nil {
			return fmt.Errorf("activity meta: %w", err)
		}
		meta = raw
	}
	return repo.Create(ctx, &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      a.UserID,
		Type:        a.Type,
		Description: a.Description,
		Meta:        meta,
		CreatedAt:   now,
	})
}
