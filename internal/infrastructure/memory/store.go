// Package memory Stock Store en memoria con transacciones: bloqueos exclusivos por fila,
// escrituras diferidas hasta el commit y descarte completo en rollback.
// Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
	"github.com/shopspring/decimal"
)

// LockObserver recibe cada bloqueo adquirido (no los reentrantes) con el id de la transacción.
type LockObserver func(txID, key string)

// Option configura el Store.
type Option func(*Store)

// WithLockTimeout espera máxima por un bloqueo de fila.
func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

// WithRetries reintentos ante errores transitorios y backoff lineal entre intentos.
func WithRetries(max int, backoff time.Duration) Option {
	return func(s *Store) { s.maxRetries, s.backoff = max, backoff }
}

// WithLogger logger para reintentos.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = l.Component("memory_tx") }
}

// WithLockObserver registra el orden de adquisición de bloqueos.
func WithLockObserver(fn LockObserver) Option {
	return func(s *Store) { s.observer = fn }
}

// Store estado confirmado más tabla de bloqueos. Implementa inventory.TxRunner.
type Store struct {
	mu    sync.Mutex
	state state
	seq   map[string]int64
	locks *lockTable

	lockTimeout time.Duration
	maxRetries  int
	backoff     time.Duration
	log         *logger.Logger
	observer    LockObserver
}

type state struct {
	materials    map[int64]entity.RawMaterial
	products     map[int64]entity.Product
	batches      map[int64]*entity.ProductionBatch
	orders       map[int64]*entity.DistributionOrder
	procurements []entity.Procurement
	activity     []entity.ActivityLog
}

var _ inventory.TxRunner = (*Store)(nil)

// New crea un Store vacío.
func New(opts ...Option) *Store {
	s := &Store{
		state: state{
			materials: map[int64]entity.RawMaterial{},
			products:  map[int64]entity.Product{},
			batches:   map[int64]*entity.ProductionBatch{},
			orders:    map[int64]*entity.DistributionOrder{},
		},
		seq:         map[string]int64{},
		locks:       newLockTable(),
		lockTimeout: 5 * time.Second,
		backoff:     50 * time.Millisecond,
		log:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) nextID(kind string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq[kind]++
	return s.seq[kind]
}

// Run ejecuta fn en una transacción. Los errores transitorios (bloqueo agotado) se
// reintentan hasta maxRetries veces; el resto se devuelve tras descartar las escrituras.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, st inventory.Stores) error) error {
	for attempt := 0; ; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil || !domain.IsRetryable(err) || attempt >= s.maxRetries {
			return err
		}
		s.log.Warn().Err(err).Int("attempt", attempt+1).Msg("reintentando transacción")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt+1)):
		}
	}
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, st inventory.Stores) error) error {
	t := newTx(s)
	defer t.releaseAll()
	if err := fn(ctx, t.stores()); err != nil {
		return err
	}
	s.commit(t)
	return nil
}

// commit aplica el overlay de la transacción. Se ejecuta antes de liberar los bloqueos.
func (s *Store) commit(t *tx) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, m := range t.materials {
		s.state.materials[id] = m
	}
	for id, p := range t.products {
		s.state.products[id] = p
	}
	for id, b := range t.batches {
		if b == nil {
			delete(s.state.batches, id)
			continue
		}
		s.state.batches[id] = b
	}
	for id, o := range t.orders {
		if o == nil {
			delete(s.state.orders, id)
			continue
		}
		s.state.orders[id] = o
	}
	s.state.procurements = append(s.state.procurements, t.procurements...)
	s.state.activity = append(s.state.activity, t.activity...)
}

// ── Seed y lectura directa (tests, arranque en memoria) ──

// AddMaterial inserta un material confirmado y devuelve su id.
func (s *Store) AddMaterial(name string, qty decimal.Decimal) int64 {
	m := entity.NewRawMaterial(name, time.Now())
	m.Quantity = qty.Round(1)
	m.ID = s.nextID("material")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.materials[m.ID] = *m
	return m.ID
}

// AddProduct inserta un producto confirmado y devuelve su id.
func (s *Store) AddProduct(name string, yieldPerSack, stockPcs int) int64 {
	p := entity.NewProduct(name, yieldPerSack, stockPcs, time.Now())
	p.ID = s.nextID("product")
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products[p.ID] = *p
	return p.ID
}

// MaterialQuantity cantidad confirmada del material (por nombre case-insensitive).
func (s *Store) MaterialQuantity(name string) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entity.MaterialKey(name)
	for _, m := range s.state.materials {
		if entity.MaterialKey(m.Name) == key {
			return m.Quantity, true
		}
	}
	return decimal.Zero, false
}

// ProductStock stock confirmado del producto.
func (s *Store) ProductStock(id int64) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p.StockPcs, ok
}

// tx overlay de escrituras pendientes más los bloqueos retenidos.
type tx struct {
	id    string
	store *Store
	held  map[string]struct{}
	order []string

	materials    map[int64]entity.RawMaterial
	products     map[int64]entity.Product
	batches      map[int64]*entity.ProductionBatch // nil = borrado
	orders       map[int64]*entity.DistributionOrder
	procurements []entity.Procurement
	activity     []entity.ActivityLog
}

func newTx(s *Store) *tx {
	return &tx{
		id:        uuid.New().String(),
		store:     s,
		held:      map[string]struct{}{},
		materials: map[int64]entity.RawMaterial{},
		products:  map[int64]entity.Product{},
		batches:   map[int64]*entity.ProductionBatch{},
		orders:    map[int64]*entity.DistributionOrder{},
	}
}

func (t *tx) stores() inventory.Stores {
	return inventory.Stores{
		Materials:    &materialRepo{t: t},
		Products:     &productRepo{t: t},
		Batches:      &batchRepo{t: t},
		Orders:       &orderRepo{t: t},
		Procurements: &procurementRepo{t: t},
		Activity:     &activityRepo{t: t},
	}
}

// lock adquiere key una sola vez por transacción (reentrante).
func (t *tx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	if err := t.store.locks.acquire(ctx, key, t.store.lockTimeout); err != nil {
		return err
	}
	t.held[key] = struct{}{}
	t.order = append(t.order, key)
	if t.store.observer != nil {
		t.store.observer(t.id, key)
	}
	return nil
}

func (t *tx) releaseAll() {
	for i := len(t.order) - 1; i >= 0; i-- {
		t.store.locks.release(t.order[i])
	}
	t.order = nil
	t.held = map[string]struct{}{}
}
