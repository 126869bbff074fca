package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/inventory"
)

// Engine motor de conciliación: traduce cada evento de ciclo de vida (create/update/delete)
// de lotes y órdenes en un plan de deltas y lo aplica con el Material Ledger y el aplicador
// de producto terminado, dentro de la unidad de trabajo del caller.
//
// Orden global de bloqueo: materias primas por nombre canónico ascendente, luego productos
// por id ascendente. El engine no guarda estado entre llamadas.
type Engine struct {
	now func() time.Time
}

// NewEngine construye el motor. now nil usa time.Now.
func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// Apply ejecuta un plan con los repositorios de la transacción s.
// El primer error aborta sin aplicar los pasos restantes; el caller debe hacer rollback.
func (e *Engine) Apply(ctx context.Context, s Stores, plan inventory.Plan) (*Effects, error) {
	effects := &Effects{}

	ledger := NewMaterialLedger(s.Materials, e.now)
	for _, md := range plan.Materials {
		ch, err := ledger.ApplyDelta(ctx, md.Name, md.Delta)
		if err != nil {
			var ise *domain.InsufficientStockError
			if errors.As(err, &ise) {
				ise.Field = md.Field
			}
			return nil, err
		}
		effects.Materials = append(effects.Materials, ch)
	}

	goods := NewFinishedGoods(s.Products)
	switch plan.Mode {
	case inventory.Strict:
		changes, err := goods.ApplyStrict(ctx, plan.Products)
		if err != nil {
			return nil, err
		}
		effects.Products = changes
	default:
		for _, d := range plan.Products {
			ch, err := goods.ApplyClamped(ctx, d.ProductID, d.Delta)
			if err != nil {
				return nil, err
			}
			if ch != nil {
				effects.Products = append(effects.Products, *ch)
			}
		}
	}
	return effects, nil
}

// OnProductionCreated descuenta harina y aceite (puede fallar) y luego suma piezas (no falla).
func (e *Engine) OnProductionCreated(ctx context.Context, s Stores, b *entity.ProductionBatch) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanProductionCreate(b))
}

// OnProductionUpdated aplica solo la diferencia entre b y el snapshot previo.
func (e *Engine) OnProductionUpdated(ctx context.Context, s Stores, b *entity.ProductionBatch, prev entity.ProductionSnapshot) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanProductionUpdate(prev, b))
}

// OnProductionDeleted devuelve material y retira las piezas producidas (recortado en cero).
func (e *Engine) OnProductionDeleted(ctx context.Context, s Stores, b *entity.ProductionBatch) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanProductionDelete(b))
}

// OnDistributionCreated descuenta cargas; stock insuficiente aborta.
func (e *Engine) OnDistributionCreated(ctx context.Context, s Stores, o *entity.DistributionOrder) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanDistributionCreate(o))
}

// OnDistributionUpdated concilia cargas y devoluciones (según estado) contra el snapshot previo.
func (e *Engine) OnDistributionUpdated(ctx context.Context, s Stores, o *entity.DistributionOrder, prev entity.DistributionSnapshot) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanDistributionUpdate(prev, o))
}

// OnDistributionDeleted revierte el efecto neto persistido de la orden.
func (e *Engine) OnDistributionDeleted(ctx context.Context, s Stores, o *entity.DistributionOrder) (*Effects, error) {
	return e.Apply(ctx, s, inventory.PlanDistributionDelete(o))
}
