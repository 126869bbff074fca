package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

// UseCase compras directas de materia prima. Solo incrementa: nunca viola la no negatividad.
type UseCase struct {
	tx  inventory.TxRunner
	log *logger.Logger
	now func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log.Component("procurement"), now: time.Now}
}

// Register suma qty al material y deja registro de la compra y del historial.
func (uc *UseCase) Register(ctx context.Context, userID string, in dto.ProcurementRequest) (*dto.ProcurementResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	qty := in.Qty.Round(1)
	if !qty.IsPositive() {
		return nil, domain.NewValidationError("qty", "debe ser mayor que cero")
	}
	var (
		rec    *entity.Procurement
		change inventory.MaterialChange
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		m, err := s.Materials.LockByID(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		change, err = inventory.NewMaterialLedger(s.Materials, uc.now).ApplyDelta(ctx, m.Name, qty)
		if err != nil {
			return err
		}
		rec = &entity.Procurement{
			MaterialID: m.ID,
			Qty:        qty,
			Note:       in.Note,
			UserID:     userID,
			CreatedAt:  now,
		}
		if err := s.Procurements.Create(ctx, rec); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityProcurement,
			Description: fmt.Sprintf("Compra de %s %s (%s)", qty.StringFixed(1), m.Name, m.Unit),
			Meta:        map[string]any{"procurement_id": rec.ID, "material": change},
		}, now)
	})
	if err != nil {
		ev := uc.log.Error()
		if domain.IsBusiness(err) {
			ev = uc.log.Warn()
		}
		ev.Err(err).Int64("material_id", in.MaterialID).Msg("compra rechazada")
		return nil, err
	}
	uc.log.Info().Int64("procurement_id", rec.ID).Str("material", change.Name).Str("after", change.After.String()).Msg("compra registrada")
	return &dto.ProcurementResponse{
		ID:            rec.ID,
		MaterialID:    rec.MaterialID,
		Material:      change.Name,
		Qty:           rec.Qty,
		QuantityAfter: change.After,
	}, nil
}
