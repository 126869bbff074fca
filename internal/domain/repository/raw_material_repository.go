package repository

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RawMaterialRepository mitad "materias primas" del Stock Store.
// Los métodos Lock* bloquean la fila hasta el fin de la transacción que los contiene.
type RawMaterialRepository interface {
	// LockByName busca por nombre case-insensitive con bloqueo exclusivo. nil si no existe.
	LockByName(ctx context.Context, name string) (*entity.RawMaterial, error)
	LockByID(ctx context.Context, id int64) (*entity.RawMaterial, error)
	// Create inserta el material y asigna ID; la fila queda bloqueada en la transacción.
	Create(ctx context.Context, m *entity.RawMaterial) error
	UpdateQuantity(ctx context.Context, id int64, qty decimal.Decimal) error
	List(ctx context.Context) ([]*entity.RawMaterial, error)
}
