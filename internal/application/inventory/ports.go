package inventory

import (
	"context"

	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
)

// Stores repositorios atados a una misma transacción.
type Stores struct {
	Materials    repository.RawMaterialRepository
	Products     repository.ProductRepository
	Batches      repository.ProductionBatchRepository
	Orders       repository.DistributionOrderRepository
	Procurements repository.ProcurementRepository
	Activity     repository.ActivityLogRepository
}

// TxRunner ejecuta fn dentro de una unidad de trabajo atómica con repositorios atados a ella.
// Si fn devuelve error se hace Rollback; si no, Commit. Los bloqueos de fila se liberan al terminar.
// Las implementaciones pueden repetir fn completa ante errores transitorios (domain.IsRetryable).
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, s Stores) error) error
}
