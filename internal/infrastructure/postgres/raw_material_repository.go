package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo materias primas sobre PostgreSQL. name_key guarda la clave case-insensitive.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const materialColumns = `id, name, quantity, unit, updated_at`

func scanMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	if err := row.Scan(&m.ID, &m.Name, &m.Quantity, &m.Unit, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RawMaterialRepo) getOne(ctx context.Context, op, query string, arg any) (*entity.RawMaterial, error) {
	m, err := scanMaterial(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, Classify(op, err)
	}
	return m, nil
}

// LockByName SELECT ... FOR NO KEY UPDATE por clave canónica.
func (r *RawMaterialRepo) LockByName(ctx context.Context, name string) (*entity.RawMaterial, error) {
	return r.getOne(ctx, "lock material",
		`SELECT `+materialColumns+` FROM raw_materials WHERE name_key = $1 FOR NO KEY UPDATE`, entity.MaterialKey(name))
}

// LockByID SELECT ... FOR NO KEY UPDATE por id.
func (r *RawMaterialRepo) LockByID(ctx context.Context, id int64) (*entity.RawMaterial, error) {
	return r.getOne(ctx, "lock material",
		`SELECT `+materialColumns+` FROM raw_materials WHERE id = $1 FOR NO KEY UPDATE`, id)
}

// Create inserta y bloquea la fila. Si otra transacción la creó primero, espera su commit
// y carga la fila existente en m (id y cantidad actual).
func (r *RawMaterialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO raw_materials (name, name_key, quantity, unit, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name_key) DO NOTHING
		RETURNING id`,
		m.Name, entity.MaterialKey(m.Name), m.Quantity, m.Unit, m.UpdatedAt,
	).Scan(&m.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Classify("insert material", err)
	}
	existing, err := r.LockByName(ctx, m.Name)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("insert material %s: fila no visible tras conflicto", m.Name)
	}
	*m = *existing
	return nil
}

func (r *RawMaterialRepo) UpdateQuantity(ctx context.Context, id int64, qty decimal.Decimal) error {
	_, err := r.q.Exec(ctx,
		`UPDATE raw_materials SET quantity = $2, updated_at = now() WHERE id = $1`, id, qty)
	if err != nil {
		return Classify("update material quantity", err)
	}
	return nil
}

func (r *RawMaterialRepo) List(ctx context.Context) ([]*entity.RawMaterial, error) {
	rows, err := r.q.Query(ctx, `SELECT `+materialColumns+` FROM raw_materials ORDER BY name_key`)
	if err != nil {
		return nil, Classify("list materials", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
