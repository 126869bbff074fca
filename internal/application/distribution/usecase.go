package distribution

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/inventory"
	"github.com/jhoicas/inventario-produccion/internal/domain"
	"github.com/jhoicas/inventario-produccion/internal/domain/entity"
	stock "github.com/jhoicas/inventario-produccion/internal/domain/inventory"
	"github.com/jhoicas/inventario-produccion/pkg/logger"
)

const dateLayout = "2006-01-02"

// UseCase ciclo de vida de órdenes de distribución. Las cargas descuentan stock y las
// devoluciones solo se acreditan mientras la orden está en estado complete.
type UseCase struct {
	tx       inventory.TxRunner
	engine   *inventory.Engine
	manifest ManifestGenerator
	log      *logger.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso. manifest puede ser nil si no se expone la hoja de carga.
func NewUseCase(tx inventory.TxRunner, engine *inventory.Engine, manifest ManifestGenerator, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, engine: engine, manifest: manifest, log: log.Component("distribution"), now: time.Now}
}

// Create registra una orden pendiente y descuenta las cargas. Solo se guardan ítems con carga.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateDistributionOrderRequest) (*dto.DistributionOrderResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	loadDate, dispatch, err := parseDates(in.LoadDate, in.DispatchDate)
	if err != nil {
		return nil, err
	}
	var (
		order   *entity.DistributionOrder
		ratios  map[int64]int
		effects *inventory.Effects
	)
	err = uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		now := uc.now()
		order = &entity.DistributionOrder{
			LoadDate:     loadDate,
			DispatchDate: dispatch,
			Location:     in.Location,
			Status:       entity.StatusPending,
			CreatedBy:    userID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, it := range in.Items {
			if it.LoadQty <= 0 {
				continue
			}
			order.Items = append(order.Items, entity.DistributionItem{ProductID: it.ProductID, LoadQty: it.LoadQty})
		}
		var err error
		if ratios, err = resolveProducts(ctx, s, order); err != nil {
			return err
		}
		if effects, err = uc.engine.OnDistributionCreated(ctx, s, order); err != nil {
			return err
		}
		if err := s.Orders.Create(ctx, order); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityDistributionCreated,
			Description: fmt.Sprintf("Orden #%d a %s registrada", order.ID, order.Location),
			Meta:        activityMeta(order, effects),
		}, now)
	})
	if err != nil {
		uc.reject("create", 0, err)
		return nil, err
	}
	uc.log.Info().Int64("order_id", order.ID).Str("location", order.Location).Msg("orden creada")
	return toResponse(order, ratios, effects), nil
}

// Update reemplaza la orden y concilia cargas y devoluciones contra el estado persistido.
// Las filas con todas las cantidades en cero se descartan.
func (uc *UseCase) Update(ctx context.Context, userID string, id int64, in dto.UpdateDistributionOrderRequest) (*dto.DistributionOrderResponse, error) {
	if err := dto.Validate(&in); err != nil {
		return nil, err
	}
	loadDate, dispatch, err := parseDates(in.LoadDate, in.DispatchDate)
	if err != nil {
		return nil, err
	}
	var (
		order   *entity.DistributionOrder
		ratios  map[int64]int
		effects *inventory.Effects
	)
	err = uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		current, err := s.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		prev := current.Snapshot()

		order = &entity.DistributionOrder{
			ID:           current.ID,
			LoadDate:     loadDate,
			DispatchDate: dispatch,
			Location:     in.Location,
			Status:       in.Status,
			CreatedBy:    current.CreatedBy,
			CreatedAt:    current.CreatedAt,
			UpdatedAt:    uc.now(),
		}
		for _, it := range in.Items {
			if it.LoadQty == 0 && it.ReturnQty == 0 && it.BoQty == 0 {
				continue
			}
			order.Items = append(order.Items, entity.DistributionItem{
				OrderID:   current.ID,
				ProductID: it.ProductID,
				LoadQty:   it.LoadQty,
				ReturnQty: it.ReturnQty,
				BoQty:     it.BoQty,
			})
		}
		if ratios, err = resolveProducts(ctx, s, order); err != nil {
			return err
		}
		if effects, err = uc.engine.OnDistributionUpdated(ctx, s, order, prev); err != nil {
			return err
		}
		if err := s.Orders.UpdateHeader(ctx, order); err != nil {
			return err
		}
		if err := s.Orders.ReplaceItems(ctx, order.ID, order.Items); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityDistributionUpdated,
			Description: fmt.Sprintf("Orden #%d a %s actualizada (%s)", order.ID, order.Location, order.Status),
			Meta:        activityMeta(order, effects),
		}, uc.now())
	})
	if err != nil {
		uc.reject("update", id, err)
		return nil, err
	}
	uc.log.Info().Int64("order_id", id).Str("status", order.Status).Msg("orden actualizada")
	return toResponse(order, ratios, effects), nil
}

// Delete devuelve las cargas (y retira devoluciones acreditadas) y elimina la orden.
func (uc *UseCase) Delete(ctx context.Context, userID string, id int64) (*inventory.Effects, error) {
	var effects *inventory.Effects
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		current, err := s.Orders.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if effects, err = uc.engine.OnDistributionDeleted(ctx, s, current); err != nil {
			return err
		}
		if err := s.Orders.Delete(ctx, id); err != nil {
			return err
		}
		return inventory.RecordActivity(ctx, s.Activity, inventory.Activity{
			UserID:      userID,
			Type:        entity.ActivityDistributionDeleted,
			Description: fmt.Sprintf("Orden #%d a %s eliminada", current.ID, current.Location),
			Meta:        activityMeta(current, effects),
		}, uc.now())
	})
	if err != nil {
		uc.reject("delete", id, err)
		return nil, err
	}
	uc.log.Info().Int64("order_id", id).Msg("orden eliminada")
	return effects, nil
}

// Get devuelve la orden con rendimientos de carga y devolución en sacos.
func (uc *UseCase) Get(ctx context.Context, id int64) (*dto.DistributionOrderResponse, error) {
	order, products, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(order, stock.Ratios(products), nil), nil
}

// Manifest genera la hoja de carga en PDF.
func (uc *UseCase) Manifest(ctx context.Context, id int64) ([]byte, error) {
	if uc.manifest == nil {
		return nil, errors.New("generador de manifiesto no configurado")
	}
	order, products, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ratios := stock.Ratios(products)
	m := &Manifest{
		OrderID:      order.ID,
		LoadDate:     order.LoadDate,
		DispatchDate: order.DispatchDate,
		Location:     order.Location,
		Status:       order.Status,
		LoadYield:    stock.LoadYield(order.Items, ratios),
		ReturnYield:  stock.ReturnYield(order.Items, ratios),
	}
	for _, it := range order.Items {
		line := ManifestLine{LoadQty: it.LoadQty, ReturnQty: it.ReturnQty, BoQty: it.BoQty}
		if p, ok := products[it.ProductID]; ok {
			line.Code, line.Name = p.Code, p.Name
		} else {
			line.Code = strconv.FormatInt(it.ProductID, 10)
		}
		m.Lines = append(m.Lines, line)
	}
	return uc.manifest.Generate(m)
}

func (uc *UseCase) load(ctx context.Context, id int64) (*entity.DistributionOrder, map[int64]*entity.Product, error) {
	var (
		order    *entity.DistributionOrder
		products map[int64]*entity.Product
	)
	err := uc.tx.Run(ctx, func(ctx context.Context, s inventory.Stores) error {
		var err error
		order, err = s.Orders.GetByID(ctx, id)
		if err != nil || order == nil {
			return err
		}
		products, err = s.Products.ListByIDs(ctx, order.ProductIDs())
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	return order, products, nil
}

func (uc *UseCase) reject(op string, id int64, err error) {
	ev := uc.log.Error()
	if domain.IsBusiness(err) {
		ev = uc.log.Warn()
	}
	ev.Err(err).Str("op", op).Int64("order_id", id).Msg("operación de orden rechazada")
}

// resolveProducts valida que los productos existan y devuelve sus ratios de rendimiento.
func resolveProducts(ctx context.Context, s inventory.Stores, o *entity.DistributionOrder) (map[int64]int, error) {
	ids := o.ProductIDs()
	products, err := s.Products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := products[id]; !ok {
			return nil, &domain.InvalidReferenceError{Kind: "product", Ref: strconv.FormatInt(id, 10)}
		}
	}
	return stock.Ratios(products), nil
}

// parseDates valida dispatch_date >= load_date cuando viene informado.
func parseDates(load string, dispatch *string) (time.Time, *time.Time, error) {
	loadDate, err := time.Parse(dateLayout, load)
	if err != nil {
		return time.Time{}, nil, domain.NewValidationError("load_date", "formato de fecha YYYY-MM-DD")
	}
	if dispatch == nil || *dispatch == "" {
		return loadDate, nil, nil
	}
	d, err := time.Parse(dateLayout, *dispatch)
	if err != nil {
		return time.Time{}, nil, domain.NewValidationError("dispatch_date", "formato de fecha YYYY-MM-DD")
	}
	if d.Before(loadDate) {
		return time.Time{}, nil, domain.NewValidationError("dispatch_date", "no puede ser anterior a load_date")
	}
	return loadDate, &d, nil
}

func activityMeta(o *entity.DistributionOrder, effects *inventory.Effects) map[string]any {
	return map[string]any{"order_id": o.ID, "status": o.Status, "effects": effects}
}

func toResponse(o *entity.DistributionOrder, ratios map[int64]int, effects *inventory.Effects) *dto.DistributionOrderResponse {
	items := make([]dto.DistributionItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.DistributionItemResponse{
			ProductID: it.ProductID,
			LoadQty:   it.LoadQty,
			ReturnQty: it.ReturnQty,
			BoQty:     it.BoQty,
		})
	}
	var dispatch *string
	if o.DispatchDate != nil {
		s := o.DispatchDate.Format(dateLayout)
		dispatch = &s
	}
	return &dto.DistributionOrderResponse{
		ID:           o.ID,
		LoadDate:     o.LoadDate.Format(dateLayout),
		DispatchDate: dispatch,
		Location:     o.Location,
		Status:       o.Status,
		LoadYield:    stock.LoadYield(o.Items, ratios),
		ReturnYield:  stock.ReturnYield(o.Items, ratios),
		Items:        items,
		Effects:      effects,
	}
}
