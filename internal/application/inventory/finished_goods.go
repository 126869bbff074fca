package inventory

import (
	"context"
	"strconv"

	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// FinishedGoods aplica deltas en piezas al stock de productos terminados.
type FinishedGoods struct {
	repo repository.ProductRepository
}

// NewFinishedGoods construye el aplicador sobre el repositorio de la transacción.
func NewFinishedGoods(repo repository.ProductRepository) *FinishedGoods {
	return &FinishedGoods{repo: repo}
}

// ApplyClamped bloquea el producto y aplica max(0, stock+delta). Nunca falla por stock:
// un producto inexistente es no-op (nil, nil).
func (f *FinishedGoods) ApplyClamped(ctx context.Context, productID int64, delta int) (*ProductChange, error) {
	p, err := f.repo.LockByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	newStock := max(0, p.StockPcs+delta)
	if err := f.repo.UpdateStock(ctx, p.ID, newStock); err != nil {
		return nil, err
	}
	return &ProductChange{
		ProductID: p.ID,
		Code:      p.Code,
		Before:    p.StockPcs,
		After:     newStock,
		Delta:     delta,
		Applied:   newStock - p.StockPcs,
	}, nil
}

// ApplyStrict bloquea los productos en orden ascendente de id y aplica cada delta.
// Producto inexistente: InvalidReference. Stock resultante negativo: InsufficientStock.
// Cualquier error aborta; el rollback de la transacción descarta lo ya escrito.
func (f *FinishedGoods) ApplyStrict(ctx context.Context, deltas []inventory.ProductDelta) ([]ProductChange, error) {
	ordered := append([]inventory.ProductDelta(nil), deltas...)
	inventory.SortProductDeltas(ordered)

	changes := make([]ProductChange, 0, len(ordered))
	for _, d := range ordered {
		if d.Delta == 0 {
			continue
		}
		p, err := f.repo.LockByID(ctx, d.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.InvalidReferenceError{Kind: "product", Ref: strconv.FormatInt(d.ProductID, 10)}
		}
		newStock := p.StockPcs + d.Delta
		if newStock < 0 {
			e := domain.NewInsufficientStock(p.Code, decimal.NewFromInt(int64(p.StockPcs)), decimal.NewFromInt(int64(d.Delta)))
			e.Field = inventory.FieldItems
			return nil, e
		}
		if err := f.repo.UpdateStock(ctx, p.ID, newStock); err != nil {
			return nil, err
		}
		changes = append(changes, ProductChange{
			ProductID: p.ID,
			Code:      p.Code,
			Before:    p.StockPcs,
			After:     newStock,
			Delta:     d.Delta,
			Applied:   d.Delta,
		})
	}
	return changes, nil
}
