package stock

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
)

// SeedProduct producto del catálogo inicial.
type SeedProduct struct {
	Name         string
	YieldPerSack int
}

// DefaultProducts catálogo de panes con su rendimiento en piezas por saco.
var DefaultProducts = []SeedProduct{
	{"SSS", 29}, {"900", 31}, {"800", 35}, {"SS", 40}, {"S", 46}, {"750", 50},
	{"HALF", 58}, {"1/2", 78}, {"BIG", 80}, {"X12", 64}, {"X6", 32}, {"X5", 18},
}

// DefaultMaterials materias primas que deben existir desde el inicio (cantidad 0).
var DefaultMaterials = []string{entity.MaterialFlour, entity.MaterialOil}

// SeedResult cantidad de filas creadas por Seed.
type SeedResult struct {
	Products  int
	Materials int
}

// Seed crea en una sola transacción los productos y materias primas que falten.
// Es idempotente: los existentes (por código o nombre canónico) no se tocan.
func Seed(ctx context.Context, tx inventory.TxRunner, products []SeedProduct, materials []string) (SeedResult, error) {
	var res SeedResult
	err := tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		res = SeedResult{}
		now := time.Now()

		existing, err := s.Products.List(ctx)
		if err != nil {
			return err
		}
		codes := make(map[string]struct{}, len(existing))
		for _, p := range existing {
			codes[p.Code] = struct{}{}
		}
		for _, sp := range products {
			if _, ok := codes[entity.ProductCode(sp.Name)]; ok {
				continue
			}
			if err := s.Products.Create(ctx, entity.NewProduct(sp.Name, sp.YieldPerSack, 0, now)); err != nil {
				return err
			}
			codes[entity.ProductCode(sp.Name)] = struct{}{}
			res.Products++
		}

		for _, name := range materials {
			m, err := s.Materials.LockByName(ctx, name)
			if err != nil {
				return err
			}
			if m != nil {
				continue
			}
			if err := s.Materials.Create(ctx, entity.NewRawMaterial(name, now)); err != nil {
				return err
			}
			res.Materials++
		}
		return nil
	})
	return res, err
}
