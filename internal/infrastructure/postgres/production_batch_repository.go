package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
)

var _ repository.ProductionBatchRepository = (*ProductionBatchRepo)(nil)

// ProductionBatchRepo lotes de producción e ítems.
type ProductionBatchRepo struct {
	q Querier
}

// NewProductionBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionBatchRepository(q Querier) *ProductionBatchRepo {
	return &ProductionBatchRepo{q: q}
}

const batchColumns = `id, batch_set, batch_date, expected_yield, actual_flour_used, oil_used, created_by, created_at, updated_at`

func (r *ProductionBatchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO production_batches (batch_set, batch_date, expected_yield, actual_flour_used, oil_used, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		b.Set, b.Date, b.ExpectedYield, b.ActualFlourUsed, b.OilUsed, b.CreatedBy, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return Classify("insert production batch", err)
	}
	return r.insertItems(ctx, b.ID, b.Items)
}

func (r *ProductionBatchRepo) insertItems(ctx context.Context, batchID int64, items []entity.ProductionItem) error {
	for i := range items {
		items[i].BatchID = batchID
		err := r.q.QueryRow(ctx, `
			INSERT INTO production_items (batch_id, product_id, produced_qty)
			VALUES ($1, $2, $3) RETURNING id`,
			batchID, items[i].ProductID, items[i].ProducedQty,
		).Scan(&items[i].ID)
		if err != nil {
			return Classify("insert production item", err)
		}
	}
	return nil
}

func (r *ProductionBatchRepo) get(ctx context.Context, id int64, lock bool) (*entity.ProductionBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM production_batches WHERE id = $1`
	op := "get production batch"
	if lock {
		query += ` FOR UPDATE`
		op = "lock production batch"
	}
	var b entity.ProductionBatch
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Set, &b.Date, &b.ExpectedYield, &b.ActualFlourUsed, &b.OilUsed, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, Classify(op, err)
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, batch_id, product_id, produced_qty FROM production_items WHERE batch_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, Classify("list production items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.ProductionItem
		if err := rows.Scan(&it.ID, &it.BatchID, &it.ProductID, &it.ProducedQty); err != nil {
			return nil, fmt.Errorf("scan production item: %w", err)
		}
		b.Items = append(b.Items, it)
	}
	return &b, rows.Err()
}

// LockByID bloquea la cabecera (FOR UPDATE) y carga sus ítems.
func (r *ProductionBatchRepo) LockByID(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, true)
}

func (r *ProductionBatchRepo) GetByID(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	return r.get(ctx, id, false)
}

func (r *ProductionBatchRepo) UpdateHeader(ctx context.Context, b *entity.ProductionBatch) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE production_batches
		SET batch_set = $2, batch_date = $3, expected_yield = $4, actual_flour_used = $5, oil_used = $6, updated_at = $7
		WHERE id = $1`,
		b.ID, b.Set, b.Date, b.ExpectedYield, b.ActualFlourUsed, b.OilUsed, b.UpdatedAt,
	)
	if err != nil {
		return Classify("update production batch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems borra e inserta el conjunto completo de ítems.
func (r *ProductionBatchRepo) ReplaceItems(ctx context.Context, batchID int64, items []entity.ProductionItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM production_items WHERE batch_id = $1`, batchID); err != nil {
		return Classify("delete production items", err)
	}
	return r.insertItems(ctx, batchID, items)
}

// Delete elimina el lote; los ítems caen por ON DELETE CASCADE.
func (r *ProductionBatchRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM production_batches WHERE id = $1`, id)
	if err != nil {
		return Classify("delete production batch", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
