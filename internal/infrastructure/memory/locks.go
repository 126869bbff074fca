package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/domain"
)

// lockTable bloqueos exclusivos por fila. Cada fila es un canal de capacidad 1:
// enviar adquiere, recibir libera.
type lockTable struct {
	mu   sync.Mutex
	rows map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{rows: map[string]chan struct{}{}}
}

func (t *lockTable) row(key string) chan struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	ch, ok := t.rows[key]
	if !ok {
		ch = make(chan struct{}, 1)
		t.rows[key] = ch
	}
	return ch
}

// acquire espera el bloqueo hasta timeout. Agotado el plazo devuelve *domain.LockTimeoutError.
func (t *lockTable) acquire(ctx context.Context, key string, timeout time.Duration) error {
	ch := t.row(key)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return &domain.LockTimeoutError{Resource: key}
	}
}

func (t *lockTable) release(key string) {
	<-t.row(key)
}
