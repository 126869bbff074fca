package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// MaterialLedger aplica deltas con signo a materias primas con invariante de no negatividad.
type MaterialLedger struct {
	repo repository.RawMaterialRepository
	now  func() time.Time
}

// NewMaterialLedger construye el ledger sobre el repositorio de la transacción en curso.
func NewMaterialLedger(repo repository.RawMaterialRepository, now func() time.Time) *MaterialLedger {
	if now == nil {
		now = time.Now
	}
	return &MaterialLedger{repo: repo, now: now}
}

// ApplyDelta bloquea la fila del material (SELECT FOR UPDATE) y aplica delta.
//   - inexistente y delta < 0: InsufficientStock con available = 0.
//   - inexistente y delta >= 0: se crea con cantidad 0 bajo el mismo bloqueo.
//   - current + delta (1 decimal) < 0: InsufficientStock, sin escribir nada.
func (l *MaterialLedger) ApplyDelta(ctx context.Context, name string, delta decimal.Decimal) (MaterialChange, error) {
	m, err := l.repo.LockByName(ctx, name)
	if err != nil {
		return MaterialChange{}, err
	}
	if m == nil {
		if delta.IsNegative() {
			return MaterialChange{}, domain.NewInsufficientStock(entity.CanonicalMaterialName(name), decimal.Zero, delta)
		}
		m = entity.NewRawMaterial(name, l.now())
		if err := l.repo.Create(ctx, m); err != nil {
			return MaterialChange{}, err
		}
	}

	before := m.Quantity
	newQty := before.Add(delta).Round(1)
	if newQty.IsNegative() {
		return MaterialChange{}, domain.NewInsufficientStock(m.Name, before, delta)
	}
	if err := l.repo.UpdateQuantity(ctx, m.ID, newQty); err != nil {
		return MaterialChange{}, err
	}
	m.Quantity = newQty
	return MaterialChange{Name: m.Name, Before: before, After: newQty, Delta: delta}, nil
}
