package production

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	stock "github.com/jhoicas/inventario-produccion/internal/domain/inventory"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

const dateLayout = "2006-01-02"

// UseCase ciclo de vida de lotes de producción. Cada operación es una única transacción:
// conciliación de stock, persistencia del lote y entrada de historial.
type UseCase struct {
	tx     inventory.TxRunner
	engine *inventory.Engine
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner, engine *inventory.Engine, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, engine: engine, log: log.Component("production"), now: time.Now}
}

// Create registra un lote: descuenta harina/aceite y suma piezas producidas.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.ProductionBatchRequest) (*dto.ProductionBatchResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	var (
		batch   *entity.ProductionBatch
		effects *inventory.Effects
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		batch = buildBatch(in, uc.now())
		batch.CreatedBy = userID
		if err := resolveYield(ctx, s, batch); err != nil {
			return err
		}
		var err error
		effects, err = uc.engine.OnProductionCreated(ctx, s, batch)
		if err != nil {
			return err
		}
		if err := s.Batches.Create(ctx, batch); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityProductionCreated,
			Description: fmt.Sprintf("Lote #%d set %s registrado (%s sacos de harina)", batch.ID, batch.Set, batch.ActualFlourUsed.StringFixed(1)),
			Meta:        activityMeta(batch.ID, effects),
		}, uc.now())
	})
	if err != nil {
		uc.reject("create", 0, err)
		return nil, err
	}
	uc.log.Info().Int64("batch_id", batch.ID).Int("items", len(batch.Items)).Msg("lote creado")
	return toResponse(batch, effects), nil
}

// Update reemplaza cabecera e ítems y concilia solo la diferencia contra el estado persistido.
func (uc *UseCase) Update(ctx context.Context, userID string, id int64, in dto.ProductionBatchRequest) (*dto.ProductionBatchResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	var (
		batch   *entity.ProductionBatch
		effects *inventory.Effects
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		current, err := s.Batches.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		prev := current.Snapshot()

		batch = buildBatch(in, uc.now())
		batch.ID = current.ID
		batch.CreatedBy = current.CreatedBy
		batch.CreatedAt = current.CreatedAt
		if err := resolveYield(ctx, s, batch); err != nil {
			return err
		}
		effects, err = uc.engine.OnProductionUpdated(ctx, s, batch, prev)
		if err != nil {
			return err
		}
		if err := s.Batches.UpdateHeader(ctx, batch); err != nil {
			return err
		}
		if err := s.Batches.ReplaceItems(ctx, batch.ID, batch.Items); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityProductionUpdated,
			Description: fmt.Sprintf("Lote #%d set %s actualizado", batch.ID, batch.Set),
			Meta:        activityMeta(batch.ID, effects),
		}, uc.now())
	})
	if err != nil {
		uc.reject("update", id, err)
		return nil, err
	}
	uc.log.Info().Int64("batch_id", id).Bool("stock_changed", !effects.IsZero()).Msg("lote actualizado")
	return toResponse(batch, effects), nil
}

// Delete revierte el efecto completo del lote y lo elimina con sus ítems.
func (uc *UseCase) Delete(ctx context.Context, userID string, id int64) (*inventory.Effects, error) {
	var effects *inventory.Effects
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		current, err := s.Batches.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		effects, err = uc.engine.OnProductionDeleted(ctx, s, current)
		if err != nil {
			return err
		}
		if err := s.Batches.Delete(ctx, id); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityProductionDeleted,
			Description: fmt.Sprintf("Lote #%d set %s eliminado", current.ID, current.Set),
			Meta:        activityMeta(current.ID, effects),
		}, uc.now())
	})
	if err != nil {
		uc.reject("delete", id, err)
		return nil, err
	}
	uc.log.Info().Int64("batch_id", id).Msg("lote eliminado")
	return effects, nil
}

// Get devuelve el lote con sus ítems.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.ProductionBatchResponse, error) {
	var batch *entity.ProductionBatch
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		var err error
		batch, err = s.Batches.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(batch, nil), nil
}

// reject registra rechazos de negocio en Warn y fallas de infraestructura en Error.
func (uc *UseCase) reject(op string, id int64, err error) {
	ev := uc.log.Error()
	if domain.IsBusiness(err) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Str("op", op).Int64("batch_id", id).Msg("operación de lote rechazada")
}

// resolveYield valida que todos los productos existan y calcula expected_yield con sus ratios.
func resolveYield(ctx context.Context, s inventory.Stores, b *entity.ProductionBatch) error {
	ids := b.ProductIDs()
	products, err := s.Products.ListByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return &domain.InvalidReferenceError{Kind: "product", Ref: strconv.FormatInt(id, 10)}
		}
	}
	b.ExpectedYield = stock.ExpectedFlourYield(b.Items, stock.Ratios(products))
	return nil
}

func buildBatch(in dto.ProductionBatchRequest, now time.Time) *entity.ProductionBatch {
	date, _ := time.Parse(dateLayout, in.Date)
	items := make([]entity.ProductionItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, entity.ProductionItem{ProductID: it.ProductID, ProducedQty: it.ProducedQty})
	}
	return &entity.ProductionBatch{
		Set:             in.Set,
		Date:            date,
		ActualFlourUsed: in.ActualFlourUsed.Round(1),
		OilUsed:         in.OilUsed.Round(1),
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func activityMeta(batchID int64, effects *inventory.Effects) map[string]any {
	return map[string]any{"batch_id": batchID, "effects": effects}
}

func toResponse(b *entity.ProductionBatch, effects *inventory.Effects) *dto.ProductionBatchResponse {
	items := make([]dto.ProductionItemResponse, 0, len(b.Items))
	for _, it := range b.Items {
		items = append(items, dto.ProductionItemResponse{ProductID: it.ProductID, ProducedQty: it.ProducedQty})
	}
	return &dto.ProductionBatchResponse{
		ID:              b.ID,
		Set:             b.Set,
		Date:            b.Date.Format(dateLayout),
		ExpectedYield:   b.ExpectedYield,
		ActualFlourUsed: b.ActualFlourUsed,
		OilUsed:         b.OilUsed,
		Items:           items,
		Effects:         effects,
	}
}
