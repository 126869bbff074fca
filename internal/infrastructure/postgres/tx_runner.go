package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/pkg/config"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Cada transacción fija lock_timeout; los errores de contención se reintentan completos.
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
	maxRetries  int
	backoff     time.Duration
	log         *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, cfg config.ReconcileConfig, log *logger.Logger) *TxRunner {
	return &TxRunner{
		pool:        pool,
		lockTimeout: cfg.LockTimeout,
		maxRetries:  cfg.MaxRetries,
		backoff:     cfg.RetryBackoff,
		log:         log.Component("tx"),
	}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context, s inventory.Stores) error) error {
	for attempt := 0; ; attempt++ {
		txID := uuid.New().String()
		err := r.runOnce(ctx, txID, fn)
		if err == nil || !domain.IsRetryable(err) || attempt >= r.maxRetries {
			return err
		}
		r.log.Warn().Err(err).Str("tx_id", txID).Int("attempt", attempt+1).Msg("contención de bloqueos, reintentando")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoff * time.Duration(attempt+1)):
		}
	}
}

func (r *TxRunner) runOnce(ctx context.Context, txID string, fn func(ctx context.Context, s inventory.Stores) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET no admite parámetros.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(ctx, NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return Classify("commit transaction", err)
	}
	r.log.Debug().Str("tx_id", txID).Msg("commit")
	return nil
}

// NewStores repositorios atados a q (pool o tx).
func NewStores(q Querier) inventory.Stores {
	return inventory.Stores{
		Materials:    NewRawMaterialRepository(q),
		Products:     NewProductRepository(q),
		Batches:      NewProductionBatchRepository(q),
		Orders:       NewDistributionOrderRepository(q),
		Procurements: NewProcurementRepository(q),
		Activity:     NewActivityLogRepository(q),
	}
}
