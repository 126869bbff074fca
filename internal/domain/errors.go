package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidReference  = errors.New("referencia inválida")
	ErrLockTimeout       = errors.New("tiempo de espera de bloqueo agotado")
)

// InsufficientStockError detalla una deducción que dejaría el stock en negativo.
// Field indica el campo de entrada al que se atribuye (actual_flour_used, oil_used, items).
type InsufficientStockError struct {
	Subject   string
	Field     string
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: requerido %s, disponible %s",
		e.Subject, e.Required.StringFixed(1), e.Available.StringFixed(1))
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// NewInsufficientStock construye el error normalizando available/required a 1 decimal.
func NewInsufficientStock(subject string, available, required decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		Subject:   subject,
		Available: available.Round(1),
		Required:  required.Abs().Round(1),
	}
}

// InvalidReferenceError un ítem referencia un producto o material inexistente.
type InvalidReferenceError struct {
	Kind string // product | material
	Ref  string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referencia inválida: %s %s no existe", e.Kind, e.Ref)
}

func (e *InvalidReferenceError) Unwrap() error { return ErrInvalidReference }

// LockTimeoutError contención de infraestructura (lock wait, deadlock, serialización).
// Es seguro reintentar la operación completa.
type LockTimeoutError struct {
	Resource string
	Err      error
}

func (e *LockTimeoutError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bloqueo no disponible (%s): %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("bloqueo no disponible (%s)", e.Resource)
}

func (e *LockTimeoutError) Unwrap() error { return e.Err }

// Is hace que errors.Is(err, ErrLockTimeout) funcione sin perder la causa original.
func (e *LockTimeoutError) Is(target error) bool { return target == ErrLockTimeout }

// IsRetryable indica si err es transitorio y la unidad de trabajo puede repetirse desde cero.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}

// IsBusiness indica un rechazo de negocio (no una falla de infraestructura).
func IsBusiness(err error) bool {
	return errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrInvalidReference) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound)
}

// ValidationError agrupa los campos inválidos de una entrada.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entrada inválida: %d campo(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para un único campo.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
