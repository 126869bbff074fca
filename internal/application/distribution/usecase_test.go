package distribution_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/jhoicas/inventario-produccion/internal/application/distribution"
	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	"github.com/jhoicas/inventario-produccion/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "00000000-0000-0000-0000-000000000002"

type fakeManifest struct{ got *distribution.Manifest }

func (f *fakeManifest) Generate(m *distribution.Manifest) ([]byte, error) {
	f.got = m
	return []byte("%PDF-fake"), nil
}

func newUseCase(store *memory.Store, manifest distribution.ManifestGenerator) *distribution.UseCase {
	return distribution.NewUseCase(store, inventory.NewEngine(nil), manifest, logger.Nop())
}

func stockOf(t *testing.T, store *memory.Store, id int64) int {
	t.Helper()
	s, ok := store.ProductStock(id)
	require.True(t, ok)
	return s
}

func createReq(items ...dto.DistributionItemRequest) dto.CreateDistributionOrderRequest {
	return dto.CreateDistributionOrderRequest{LoadDate: "2026-04-01", Location: "Pasig", Items: items}
}

func updateReq(status string, items ...dto.DistributionItemRequest) dto.UpdateDistributionOrderRequest {
	return dto.UpdateDistributionOrderRequest{LoadDate: "2026-04-01", Location: "Pasig", Status: status, Items: items}
}

func TestCreate_DeductsLoads(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 100)
	uc := newUseCase(store, nil)

	resp, err := uc.Create(context.Background(), userID, createReq(
		dto.DistributionItemRequest{ProductID: p, LoadQty: 80},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Equal(t, "2.0", resp.LoadYield.StringFixed(1))
	assert.Equal(t, 20, stockOf(t, store, p))
}

func TestCreate_DropsZeroLoadRowsAndIgnoresReturns(t *testing.T) {
	store := memory.New()
	p1 := store.AddProduct("SS", 40, 100)
	p2 := store.AddProduct("S", 46, 100)
	uc := newUseCase(store, nil)

	resp, err := uc.Create(context.Background(), userID, createReq(
		dto.DistributionItemRequest{ProductID: p1, LoadQty: 10, ReturnQty: 5},
		dto.DistributionItemRequest{ProductID: p2, LoadQty: 0},
	))
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 0, resp.Items[0].ReturnQty)
	assert.Equal(t, 90, stockOf(t, store, p1))
	assert.Equal(t, 100, stockOf(t, store, p2))
}

func TestCreate_InsufficientStockAbortsWholeOrder(t *testing.T) {
	store := memory.New()
	p1 := store.AddProduct("SS", 40, 100)
	p2 := store.AddProduct("S", 46, 5)
	uc := newUseCase(store, nil)

	_, err := uc.Create(context.Background(), userID, createReq(
		dto.DistributionItemRequest{ProductID: p1, LoadQty: 50},
		dto.DistributionItemRequest{ProductID: p2, LoadQty: 6},
	))
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, "S", ise.Subject)
	assert.Equal(t, "items", ise.Field)
	assert.Equal(t, 100, stockOf(t, store, p1))
	assert.Equal(t, 5, stockOf(t, store, p2))
}

func TestCreate_UnknownProduct(t *testing.T) {
	store := memory.New()
	uc := newUseCase(store, nil)
	_, err := uc.Create(context.Background(), userID, createReq(dto.DistributionItemRequest{ProductID: 77, LoadQty: 1}))
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestCreate_Validation(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 100)
	uc := newUseCase(store, nil)

	in := createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 5, ReturnQty: 6})
	in.Location = "Manila"
	_, err := uc.Create(context.Background(), userID, in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "location")
	assert.Contains(t, ve.Fields, "items[0].return_qty")

	early := "2026-03-01"
	in = createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 5})
	in.DispatchDate = &early
	_, err = uc.Create(context.Background(), userID, in)
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "dispatch_date")
	assert.Equal(t, 100, stockOf(t, store, p))
}

func TestUpdate_StatusGatesReturns(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 100)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 60}))
	require.NoError(t, err)
	assert.Equal(t, 40, stockOf(t, store, p))

	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusPending,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 60, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 40, stockOf(t, store, p), "pending no acredita devoluciones")

	resp, err := uc.Update(ctx, userID, created.ID, updateReq(entity.StatusComplete,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 60, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 50, stockOf(t, store, p))
	assert.Equal(t, "0.3", resp.ReturnYield.StringFixed(1))

	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusComplete,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 60, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 50, stockOf(t, store, p), "reenviar el mismo estado no cambia stock")

	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusPending,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 60, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 40, stockOf(t, store, p))
}

func TestUpdate_LoadIncreaseBeyondStockFails(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 50)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 40}))
	require.NoError(t, err)

	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusPending,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 51}))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, stockOf(t, store, p))

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Items[0].LoadQty)
}

func TestDelete_RevertsNetEffect(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 100)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 60}))
	require.NoError(t, err)
	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusComplete,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 60, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 50, stockOf(t, store, p))

	_, err = uc.Delete(ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, stockOf(t, store, p))

	_, err = uc.Delete(ctx, userID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_CompleteOrderNeverNeedsStock(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 10)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 10}))
	require.NoError(t, err)
	_, err = uc.Update(ctx, userID, created.ID, updateReq(entity.StatusComplete,
		dto.DistributionItemRequest{ProductID: p, LoadQty: 10, ReturnQty: 10}))
	require.NoError(t, err)
	assert.Equal(t, 10, stockOf(t, store, p))

	// Otra orden consume las devoluciones acreditadas.
	_, err = uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 10}))
	require.NoError(t, err)

	_, err = uc.Delete(ctx, userID, created.ID)
	require.NoError(t, err, "load - return = 0 no requiere stock")
	assert.Equal(t, 0, stockOf(t, store, p))
}

func TestManifest(t *testing.T) {
	store := memory.New()
	p := store.AddProduct("SS", 40, 100)
	gen := &fakeManifest{}
	uc := newUseCase(store, gen)
	ctx := context.Background()

	created, err := uc.Create(ctx, userID, createReq(dto.DistributionItemRequest{ProductID: p, LoadQty: 80}))
	require.NoError(t, err)

	pdf, err := uc.Manifest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	require.NotNil(t, gen.got)
	assert.Equal(t, "Pasig", gen.got.Location)
	require.Len(t, gen.got.Lines, 1)
	assert.Equal(t, "SS", gen.got.Lines[0].Code)
	assert.Equal(t, "2.0", gen.got.LoadYield.StringFixed(1))

	_, err = uc.Manifest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// lockRecorder registra, por transacción, los ids de producto en el orden en que se bloquean.
type lockRecorder struct {
	mu    sync.Mutex
	taken map[string][]int64
}

func (r *lockRecorder) observe(txID, key string) {
	raw, ok := strings.CutPrefix(key, "product:")
	if !ok {
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.taken[txID] = append(r.taken[txID], id)
}

// assertAscending verifica orden estrictamente ascendente por id numérico y que alguna
// transacción haya bloqueado want completo.
func (r *lockRecorder) assertAscending(t *testing.T, want []int64) {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	full := 0
	for txID, ids := range r.taken {
		for i := 1; i < len(ids); i++ {
			assert.Less(t, ids[i-1], ids[i], "tx %s: %v", txID, ids)
		}
		if len(ids) == len(want) {
			assert.Equal(t, want, ids, "tx %s", txID)
			full++
		}
	}
	assert.Positive(t, full)
}

func newLockedStore(rec *lockRecorder, products int) *memory.Store {
	store := memory.New(memory.WithLockObserver(rec.observe))
	for i := 0; i < products; i++ {
		store.AddProduct(fmt.Sprintf("P%02d", i+1), 40, 1000)
	}
	return store
}

func TestConcurrentCreates_LockProductsInAscendingOrder(t *testing.T) {
	rec := &lockRecorder{taken: map[string][]int64{}}
	store := newLockedStore(rec, 12)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	const rounds = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	for i := 0; i < rounds; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, userID, createReq(
				dto.DistributionItemRequest{ProductID: 3, LoadQty: 1},
				dto.DistributionItemRequest{ProductID: 11, LoadQty: 1},
			))
			errs <- err
		}()
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, userID, createReq(
				dto.DistributionItemRequest{ProductID: 11, LoadQty: 1},
				dto.DistributionItemRequest{ProductID: 3, LoadQty: 1},
			))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 1000-2*rounds, stockOf(t, store, 3))
	assert.Equal(t, 1000-2*rounds, stockOf(t, store, 11))
	rec.assertAscending(t, []int64{3, 11})
}

func TestConcurrentUpdates_LockProductsInAscendingOrder(t *testing.T) {
	rec := &lockRecorder{taken: map[string][]int64{}}
	store := newLockedStore(rec, 12)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	a, err := uc.Create(ctx, userID, createReq(
		dto.DistributionItemRequest{ProductID: 3, LoadQty: 1},
		dto.DistributionItemRequest{ProductID: 11, LoadQty: 1},
	))
	require.NoError(t, err)
	b, err := uc.Create(ctx, userID, createReq(
		dto.DistributionItemRequest{ProductID: 11, LoadQty: 1},
		dto.DistributionItemRequest{ProductID: 3, LoadQty: 1},
	))
	require.NoError(t, err)

	const rounds = 20
	var wg sync.WaitGroup
	errs := make(chan error, 2*rounds)
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 2; i <= rounds+1; i++ {
			_, err := uc.Update(ctx, userID, a.ID, updateReq(entity.StatusPending,
				dto.DistributionItemRequest{ProductID: 3, LoadQty: i},
				dto.DistributionItemRequest{ProductID: 11, LoadQty: i},
			))
			errs <- err
		}
	}()
	go func() {
		defer wg.Done()
		for i := 2; i <= rounds+1; i++ {
			_, err := uc.Update(ctx, userID, b.ID, updateReq(entity.StatusPending,
				dto.DistributionItemRequest{ProductID: 11, LoadQty: i},
				dto.DistributionItemRequest{ProductID: 3, LoadQty: i},
			))
			errs <- err
		}
	}()
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	assert.Equal(t, 1000-2*(rounds+1), stockOf(t, store, 3))
	assert.Equal(t, 1000-2*(rounds+1), stockOf(t, store, 11))
	rec.assertAscending(t, []int64{3, 11})
}
