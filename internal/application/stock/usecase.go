package stock

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
)

// UseCase consultas de existencias e historial.
type UseCase struct {
	tx inventory.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx inventory.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Summary existencias actuales de materias primas y productos terminados.
func (uc *UseCase) Summary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	out := &dto.StockSummaryResponse{}
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		out.Materials = []dto.RawMaterialResponse{}
		out.Products = []dto.ProductStockResponse{}
		materials, err := s.Materials.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range materials {
			out.Materials = append(out.Materials, dto.RawMaterialResponse{ID: m.ID, Name: m.Name, Quantity: m.Quantity, Unit: m.Unit})
		}
		products, err := s.Products.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			out.Products = append(out.Products, dto.ProductStockResponse{
				ID:           p.ID,
				Code:         p.Code,
				Name:         p.Name,
				YieldPerSack: p.YieldPerSack,
				StockPcs:     p.StockPcs,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecentActivity últimas entradas del historial, más recientes primero.
// limit <= 0 usa 50; el máximo es 500.
func (uc *UseCase) RecentActivity(ctx context.Context, limit int) ([]dto.ActivityLogResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultActivityLimit
	case limit > maxActivityLimit:
		limit = maxActivityLimit
	}
	var out []dto.ActivityLogResponse
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		out = []dto.ActivityLogResponse{}
		entries, err := s.Activity.ListRecent(ctx, limit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			out = append(out, dto.ActivityLogResponse{
				ID:          e.ID,
				UserID:      e.UserID,
				Type:        e.Type,
				Description: e.Description,
				Meta:        e.Meta,
				CreatedAt:   e.CreatedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
