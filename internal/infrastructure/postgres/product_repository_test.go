package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingQuerier guarda las sentencias y responde sin filas.
type recordingQuerier struct {
	sql []string
}

type noRow struct{}

func (noRow) Scan(...any) error { return pgx.ErrNoRows }

func (q *recordingQuerier) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.sql = append(q.sql, sql)
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.sql = append(q.sql, sql)
	return nil, errors.New("sin filas")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	q.sql = append(q.sql, sql)
	return noRow{}
}

func TestLockStatements_CompatibleWithForeignKeyShare(t *testing.T) {
	ctx := context.Background()
	q := &recordingQuerier{}

	p, err := postgres.NewProductRepository(q).LockByID(ctx, 11)
	require.NoError(t, err)
	assert.Nil(t, p)

	materials := postgres.NewRawMaterialRepository(q)
	m, err := materials.LockByName(ctx, "Flour")
	require.NoError(t, err)
	assert.Nil(t, m)
	_, err = materials.LockByID(ctx, 1)
	require.NoError(t, err)

	require.Len(t, q.sql, 3)
	for _, sql := range q.sql {
		assert.Contains(t, sql, "FOR NO KEY UPDATE")
		assert.NotContains(t, sql, "FOR UPDATE")
	}
}
