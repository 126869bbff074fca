package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.RawMaterialRepository       = (*materialRepo)(nil)
	_ repository.ProductRepository           = (*productRepo)(nil)
	_ repository.ProductionBatchRepository   = (*batchRepo)(nil)
	_ repository.DistributionOrderRepository = (*orderRepo)(nil)
	_ repository.ProcurementRepository       = (*procurementRepo)(nil)
	_ repository.ActivityLogRepository       = (*activityRepo)(nil)
)

func keyOf(kind string, id int64) string {
	return kind + ":" + strconv.FormatInt(id, 10)
}

// ── Materias primas ──

type materialRepo struct{ t *tx }

// find busca por clave canónica en el overlay y luego en el estado confirmado.
func (r *materialRepo) find(key string) (*entity.RawMaterial, bool) {
	for _, m := range r.t.materials {
		if entity.MaterialKey(m.Name) == key {
			m := m
			return &m, true
		}
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.state.materials {
		if entity.MaterialKey(m.Name) == key {
			m := m
			return &m, true
		}
	}
	return nil, false
}

func (r *materialRepo) byID(id int64) (*entity.RawMaterial, bool) {
	if m, ok := r.t.materials[id]; ok {
		return &m, true
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.state.materials[id]
	if !ok {
		return nil, false
	}
	return &m, true
}

func (r *materialRepo) LockByName(ctx context.Context, name string) (*entity.RawMaterial, error) {
	key := entity.MaterialKey(name)
	if err := r.t.lock(ctx, "material:"+key); err != nil {
		return nil, err
	}
	m, _ := r.find(key)
	return m, nil
}

func (r *materialRepo) LockByID(ctx context.Context, id int64) (*entity.RawMaterial, error) {
	m, ok := r.byID(id)
	if !ok {
		return nil, nil
	}
	if err := r.t.lock(ctx, "material:"+entity.MaterialKey(m.Name)); err != nil {
		return nil, err
	}
	m, _ = r.byID(id)
	return m, nil
}

func (r *materialRepo) Create(ctx context.Context, m *entity.RawMaterial) error {
	key := entity.MaterialKey(m.Name)
	if err := r.t.lock(ctx, "material:"+key); err != nil {
		return err
	}
	if _, ok := r.find(key); ok {
		return fmt.Errorf("material %s: %w", m.Name, domain.ErrConflict)
	}
	m.ID = r.t.store.nextID("material")
	r.t.materials[m.ID] = *m
	return nil
}

func (r *materialRepo) UpdateQuantity(ctx context.Context, id int64, qty decimal.Decimal) error {
	m, ok := r.byID(id)
	if !ok {
		return domain.ErrNotFound
	}
	m.Quantity = qty
	m.UpdatedAt = time.Now()
	r.t.materials[id] = *m
	return nil
}

func (r *materialRepo) List(ctx context.Context) ([]*entity.RawMaterial, error) {
	s := r.t.store
	s.mu.Lock()
	merged := make(map[int64]entity.RawMaterial, len(s.state.materials))
	for id, m := range s.state.materials {
		merged[id] = m
	}
	s.mu.Unlock()
	for id, m := range r.t.materials {
		merged[id] = m
	}
	out := make([]*entity.RawMaterial, 0, len(merged))
	for _, m := range merged {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return entity.MaterialKey(out[i].Name) < entity.MaterialKey(out[j].Name) })
	return out, nil
}

// ── Productos ──

type productRepo struct{ t *tx }

func (r *productRepo) byID(id int64) (*entity.Product, bool) {
	if p, ok := r.t.products[id]; ok {
		return &p, true
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	if !ok {
		return nil, false
	}
	return &p, true
}

func (r *productRepo) LockByID(ctx context.Context, id int64) (*entity.Product, error) {
	if err := r.t.lock(ctx, keyOf("product", id)); err != nil {
		return nil, err
	}
	p, _ := r.byID(id)
	return p, nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, _ := r.byID(id)
	return p, nil
}

func (r *productRepo) ListByIDs(ctx context.Context, ids []int64) (map[int64]*entity.Product, error) {
	out := make(map[int64]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.byID(id); ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *productRepo) UpdateStock(ctx context.Context, id int64, stockPcs int) error {
	p, ok := r.byID(id)
	if !ok {
		return domain.ErrNotFound
	}
	p.StockPcs = stockPcs
	p.UpdatedAt = time.Now()
	r.t.products[id] = *p
	return nil
}

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	p.ID = r.t.store.nextID("product")
	if p.Code == "" {
		p.Code = entity.ProductCode(p.Name)
	}
	r.t.products[p.ID] = *p
	return nil
}

func (r *productRepo) List(ctx context.Context) ([]*entity.Product, error) {
	s := r.t.store
	s.mu.Lock()
	merged := make(map[int64]entity.Product, len(s.state.products))
	for id, p := range s.state.products {
		merged[id] = p
	}
	s.mu.Unlock()
	for id, p := range r.t.products {
		merged[id] = p
	}
	out := make([]*entity.Product, 0, len(merged))
	for _, p := range merged {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ── Lotes de producción ──

type batchRepo struct{ t *tx }

func cloneBatch(b *entity.ProductionBatch) *entity.ProductionBatch {
	c := *b
	c.Items = append([]entity.ProductionItem(nil), b.Items...)
	return &c
}

func (r *batchRepo) byID(id int64) (*entity.ProductionBatch, bool) {
	if b, ok := r.t.batches[id]; ok {
		if b == nil {
			return nil, false
		}
		return cloneBatch(b), true
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.state.batches[id]
	if !ok {
		return nil, false
	}
	return cloneBatch(b), true
}

func (r *batchRepo) assignItemIDs(batchID int64, items []entity.ProductionItem) []entity.ProductionItem {
	out := make([]entity.ProductionItem, len(items))
	for i, it := range items {
		it.ID = r.t.store.nextID("production_item")
		it.BatchID = batchID
		out[i] = it
	}
	return out
}

func (r *batchRepo) Create(ctx context.Context, b *entity.ProductionBatch) error {
	b.ID = r.t.store.nextID("production_batch")
	b.Items = r.assignItemIDs(b.ID, b.Items)
	r.t.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *batchRepo) LockByID(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	if err := r.t.lock(ctx, keyOf("batch", id)); err != nil {
		return nil, err
	}
	b, _ := r.byID(id)
	return b, nil
}

func (r *batchRepo) GetByID(ctx context.Context, id int64) (*entity.ProductionBatch, error) {
	b, _ := r.byID(id)
	return b, nil
}

func (r *batchRepo) UpdateHeader(ctx context.Context, b *entity.ProductionBatch) error {
	current, ok := r.byID(b.ID)
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneBatch(b)
	next.Items = current.Items
	r.t.batches[b.ID] = next
	return nil
}

func (r *batchRepo) ReplaceItems(ctx context.Context, batchID int64, items []entity.ProductionItem) error {
	current, ok := r.byID(batchID)
	if !ok {
		return domain.ErrNotFound
	}
	current.Items = r.assignItemIDs(batchID, items)
	r.t.batches[batchID] = current
	return nil
}

func (r *batchRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID(id); !ok {
		return domain.ErrNotFound
	}
	r.t.batches[id] = nil
	return nil
}

// ── Órdenes de distribución ──

type orderRepo struct{ t *tx }

func cloneOrder(o *entity.DistributionOrder) *entity.DistributionOrder {
	c := *o
	c.Items = append([]entity.DistributionItem(nil), o.Items...)
	if o.DispatchDate != nil {
		d := *o.DispatchDate
		c.DispatchDate = &d
	}
	return &c
}

func (r *orderRepo) byID(id int64) (*entity.DistributionOrder, bool) {
	if o, ok := r.t.orders[id]; ok {
		if o == nil {
			return nil, false
		}
		return cloneOrder(o), true
	}
	s := r.t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.state.orders[id]
	if !ok {
		return nil, false
	}
	return cloneOrder(o), true
}

func (r *orderRepo) assignItemIDs(orderID int64, items []entity.DistributionItem) []entity.DistributionItem {
	out := make([]entity.DistributionItem, len(items))
	for i, it := range items {
		it.ID = r.t.store.nextID("distribution_item")
		it.OrderID = orderID
		out[i] = it
	}
	return out
}

func (r *orderRepo) Create(ctx context.Context, o *entity.DistributionOrder) error {
	o.ID = r.t.store.nextID("distribution_order")
	o.Items = r.assignItemIDs(o.ID, o.Items)
	r.t.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *orderRepo) LockByID(ctx context.Context, id int64) (*entity.DistributionOrder, error) {
	if err := r.t.lock(ctx, keyOf("order", id)); err != nil {
		return nil, err
	}
	o, _ := r.byID(id)
	return o, nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int64) (*entity.DistributionOrder, error) {
	o, _ := r.byID(id)
	return o, nil
}

func (r *orderRepo) UpdateHeader(ctx context.Context, o *entity.DistributionOrder) error {
	current, ok := r.byID(o.ID)
	if !ok {
		return domain.ErrNotFound
	}
	next := cloneOrder(o)
	next.Items = current.Items
	r.t.orders[o.ID] = next
	return nil
}

func (r *orderRepo) ReplaceItems(ctx context.Context, orderID int64, items []entity.DistributionItem) error {
	current, ok := r.byID(orderID)
	if !ok {
		return domain.ErrNotFound
	}
	current.Items = r.assignItemIDs(orderID, items)
	r.t.orders[orderID] = current
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.byID(id); !ok {
		return domain.ErrNotFound
	}
	r.t.orders[id] = nil
	return nil
}

// ── Compras e historial ──

type procurementRepo struct{ t *tx }

func (r *procurementRepo) Create(ctx context.Context, p *entity.Procurement) error {
	p.ID = r.t.store.nextID("procurement")
	r.t.procurements = append(r.t.procurements, *p)
	return nil
}

type activityRepo struct{ t *tx }

func (r *activityRepo) Create(ctx context.Context, e *entity.ActivityLog) error {
	r.t.activity = append(r.t.activity, *e)
	return nil
}

func (r *activityRepo) ListRecent(ctx context.Context, limit int) ([]*entity.ActivityLog, error) {
	s := r.t.store
	s.mu.Lock()
	all := append([]entity.ActivityLog(nil), s.state.activity...)
	s.mu.Unlock()
	all = append(all, r.t.activity...)

	out := make([]*entity.ActivityLog, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
