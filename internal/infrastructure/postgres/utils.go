package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/inventario-produccion/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeLockNotAvailable     = "55P03"
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if pgCode(err) == codeUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// Classify envuelve err con la operación. lock_not_available, deadlock_detected y
// serialization_failure se convierten en *domain.LockTimeoutError (reintentable);
// foreign_key_violation en *domain.InvalidReferenceError.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch pgCode(err) {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure:
		return &domain.LockTimeoutError{Resource: op, Err: err}
	case codeForeignKeyViolation:
		var pgErr *pgconn.PgError
		errors.As(err, &pgErr)
		return foreignKeyReference(pgErr)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// foreignKeyReference arma la referencia a partir del constraint (*_material_id_fkey, *_product_id_fkey)
// y del detalle "Key (product_id)=(42) is not present in table ...".
func foreignKeyReference(pgErr *pgconn.PgError) *domain.InvalidReferenceError {
	kind := "product"
	if strings.Contains(pgErr.ConstraintName, "material") {
		kind = "material"
	}
	ref := pgErr.ConstraintName
	if _, rest, ok := strings.Cut(pgErr.Detail, ")=("); ok {
		if v, _, ok := strings.Cut(rest, ")"); ok {
			ref = v
		}
	}
	return &domain.InvalidReferenceError{Kind: kind, Ref: ref}
}
