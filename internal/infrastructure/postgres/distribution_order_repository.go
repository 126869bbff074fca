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

var _ repository.DistributionOrderRepository = (*DistributionOrderRepo)(nil)

// DistributionOrderRepo órdenes de distribución e ítems.
type DistributionOrderRepo struct {
	q Querier
}

// NewDistributionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDistributionOrderRepository(q Querier) *DistributionOrderRepo {
	return &DistributionOrderRepo{q: q}
}

const orderColumns = `id, load_date, dispatch_date, location, status, created_by, created_at, updated_at`

func (r *DistributionOrderRepo) Create(ctx context.Context, o *entity.DistributionOrder) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO distribution_orders (load_date, dispatch_date, location, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		o.LoadDate, o.DispatchDate, o.Location, o.Status, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	if err != nil {
		return Classify("insert distribution order", err)
	}
	return r.insertItems(ctx, o.ID, o.Items)
}

func (r *DistributionOrderRepo) insertItems(ctx context.Context, orderID int64, items []entity.DistributionItem) error {
	for i := range items {
		items[i].OrderID = orderID
		err := r.q.QueryRow(ctx, `
			INSERT INTO distribution_items (order_id, product_id, load_qty, return_qty, bo_qty)
			VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			orderID, items[i].ProductID, items[i].LoadQty, items[i].ReturnQty, items[i].BoQty,
		).Scan(&items[i].ID)
		if err != nil {
			return Classify("insert distribution item", err)
		}
	}
	return nil
}

func (r *DistributionOrderRepo) get(ctx context.Context, id int64, lock bool) (*entity.DistributionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM distribution_orders WHERE id = $1`
	op := "get distribution order"
	if lock {
		query += ` FOR UPDATE`
		op = "lock distribution order"
	}
	var o entity.DistributionOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.LoadDate, &o.DispatchDate, &o.Location, &o.Status, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, Classify(op, err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, load_qty, return_qty, bo_qty
		FROM distribution_items WHERE order_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, Classify("list distribution items", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.DistributionItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.LoadQty, &it.ReturnQty, &it.BoQty); err != nil {
			return nil, fmt.Errorf("scan distribution item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// LockByID bloquea la cabecera (FOR UPDATE) y carga sus ítems.
func (r *DistributionOrderRepo) LockByID(ctx context.Context, id int64) (*entity.DistributionOrder, error) {
	return r.get(ctx, id, true)
}

func (r *DistributionOrderRepo) GetByID(ctx context.Context, id int64) (*entity.DistributionOrder, error) {
	return r.get(ctx, id, false)
}

func (r *DistributionOrderRepo) UpdateHeader(ctx context.Context, o *entity.DistributionOrder) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE distribution_orders
		SET load_date = $2, dispatch_date = $3, location = $4, status = $5, updated_at = $6
		WHERE id = $1`,
		o.ID, o.LoadDate, o.DispatchDate, o.Location, o.Status, o.UpdatedAt,
	)
	if err != nil {
		return Classify("update distribution order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DistributionOrderRepo) ReplaceItems(ctx context.Context, orderID int64, items []entity.DistributionItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM distribution_items WHERE order_id = $1`, orderID); err != nil {
		return Classify("delete distribution items", err)
	}
	return r.insertItems(ctx, orderID, items)
}

func (r *DistributionOrderRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM distribution_orders WHERE id = $1`, id)
	if err != nil {
		return Classify("delete distribution order", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
