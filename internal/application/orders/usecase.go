// Package orders implementa el ciclo de vida de pedidos de abastecimiento:
// creación, listado con alcance por capacidades, transiciones de estado
// individuales y masivas, y el efecto secundario best-effort de registrar el
// suministro en el POS al confirmar una entrega.
package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
)

// supplyDateLayout es el formato de fecha que espera la API de Poster.
const supplyDateLayout = "2006-01-02 15:04:05"

// UseCase casos de uso de pedidos.
type UseCase struct {
	runner     repository.TenantRunner
	pos        poster.API
	pdf        PDFGenerator
	log        zerolog.Logger
	posTimeout time.Duration
}

// NewUseCase construye el caso de uso. posTimeout acota cada llamada de
// registro de suministro; cero usa 10s.
func NewUseCase(runner repository.TenantRunner, pos poster.API, pdf PDFGenerator, log zerolog.Logger, posTimeout time.Duration) *UseCase {
	if posTimeout <= 0 {
		posTimeout = 10 * time.Second
	}
	return &UseCase{runner: runner, pos: pos, pdf: pdf, log: log, posTimeout: posTimeout}
}

// Create crea un pedido en estado pending con el payload validado.
func (uc *UseCase) Create(ctx context.Context, restaurantID string, actor Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	payload := order.Payload{
		Department: in.Department,
		Note:       in.Note,
		Items:      toDomainItems(in.Items),
	}
	if err := order.ValidatePayload(payload); err != nil {
		return nil, err
	}
	now := time.Now()
	o := &order.Order{
		ID:              uuid.New().String(),
		RestaurantID:    restaurantID,
		Status:          order.StatusPending,
		Payload:         payload,
		CreatedByRole:   actor.Role,
		CreatedByUserID: actor.UserID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		return r.Orders.Create(o)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// GetByID obtiene un pedido. Para usuarios con alcance restringido, un pedido
// ajeno es indistinguible de uno inexistente.
func (uc *UseCase) GetByID(ctx context.Context, restaurantID string, actor Actor, id string) (*dto.OrderResponse, error) {
	var o *order.Order
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		x, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if x == nil {
			return domain.ErrNotFound
		}
		assignments, err := r.Assignments.ListByUser(actor.UserID)
		if err != nil {
			return err
		}
		if !visibleTo(actor, assignments, x) {
			return domain.ErrNotFound
		}
		o = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List lista pedidos según el alcance del actor: roles privilegiados y
// usuarios con capacidad de envío ven todo; el resto, solo lo suyo y lo de
// sus secciones.
func (uc *UseCase) List(ctx context.Context, restaurantID string, actor Actor, in dto.ListOrdersRequest) (*dto.OrderListResponse, error) {
	if in.Limit <= 0 {
		in.Limit = 50
	}
	statuses := make([]order.Status, 0, len(in.Status))
	for _, s := range in.Status {
		st := order.Status(s)
		if !st.Valid() {
			return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, s)
		}
		statuses = append(statuses, st)
	}

	var list []*order.Order
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		assignments, err := r.Assignments.ListByUser(actor.UserID)
		if err != nil {
			return err
		}
		f := repository.OrderFilter{
			Statuses: statuses,
			Limit:    in.Limit,
			Offset:   in.Offset,
		}
		if order.VisibleScope(actor.Role, assignments) == order.ScopeMine {
			f.CreatedByUserID = actor.UserID
			for _, a := range assignments {
				f.Departments = append(f.Departments, a.SectionName)
			}
		}
		l, err := r.Orders.List(f)
		if err != nil {
			return err
		}
		list = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Update aplica un cambio parcial a un pedido: payload estilo COALESCE y
// transición de estado validada contra la tabla del ciclo de vida y las
// capacidades del actor. Si el pedido pasa a delivered, delivered_at se fija
// y el suministro se registra en el POS fuera de la transacción; un fallo ahí
// degrada a advertencia, nunca revierte la transición local.
func (uc *UseCase) Update(ctx context.Context, restaurantID string, actor Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	var (
		updated  *order.Order
		plans    []supplyPlan
		warnings []string
	)
	err := uc.runner.WithRestaurantTx(ctx, restaurantID, func(r *repository.Tenant) error {
		o, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		assignments, err := r.Assignments.ListByUser(actor.UserID)
		if err != nil {
			return err
		}
		if !visibleTo(actor, assignments, o) {
			return domain.ErrNotFound
		}

		target := o.Status
		if in.Status != nil {
			target = order.Status(*in.Status)
			if !target.Valid() {
				return fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, *in.Status)
			}
		}
		caps := order.CapabilitiesFor(assignments, o.Payload.Department)
		if err := order.CanTransition(actor.Role, caps, o.Status, target); err != nil {
			return err
		}

		var items []order.Item
		if in.Items != nil {
			items = toDomainItems(in.Items)
		}
		o.Payload = order.MergePayload(o.Payload, in.Department, in.Note, items)
		if err := order.ValidatePayload(o.Payload); err != nil {
			return err
		}

		now := time.Now()
		becameDelivered := target == order.StatusDelivered && o.Status != order.StatusDelivered
		o.Status = target
		o.UpdatedAt = now
		if becameDelivered {
			o.DeliveredAt = &now
			p, w, err := uc.buildSupplyPlans(r, o)
			if err != nil {
				return err
			}
			plans = p
			warnings = append(warnings, w...)
		}
		if err := r.Orders.Update(o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, uc.registerSupplies(ctx, plans)...)

	resp := toOrderResponse(updated)
	resp.Warnings = warnings
	return resp, nil
}

// BulkUpdate lleva varios pedidos al mismo estado destino con tolerancia por
// pedido: un pedido inválido (inexistente, transición prohibida, sin permiso)
// se reporta en Failed y no impide los demás. Las correcciones por ítem van
// keyed por pedido y se aplican según el estado destino (ver
// order.ApplyOverrides).
func (uc *UseCase) BulkUpdate(ctx context.Context, restaurantID string, actor Actor, in dto.BulkUpdateOrdersRequest) (*dto.BulkUpdateOrdersResponse, error) {
	target := order.Status(in.Status)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: estado desconocido %q", domain.ErrInvalidInput, in.Status)
	}
	var (
		failed   []dto.BulkFailure
		plans    []supplyPlan
		warnings []string
		updated  int
	)
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		assignments, err := r.Assignments.ListByUser(actor.UserID)
		if err != nil {
			return err
		}
		now := time.Now()
		var toWrite []*order.Order
		for _, id := range in.OrderIDs {
			o, err := r.Orders.GetByID(id)
			if err != nil {
				failed = append(failed, dto.BulkFailure{OrderID: id, Error: err.Error()})
				continue
			}
			if o == nil || !visibleTo(actor, assignments, o) {
				failed = append(failed, dto.BulkFailure{OrderID: id, Error: domain.ErrNotFound.Error()})
				continue
			}
			caps := order.CapabilitiesFor(assignments, o.Payload.Department)
			if err := order.CanTransition(actor.Role, caps, o.Status, target); err != nil {
				failed = append(failed, dto.BulkFailure{OrderID: id, Error: err.Error()})
				continue
			}
			becameDelivered := target == order.StatusDelivered && o.Status != order.StatusDelivered
			o.Payload.Items = order.ApplyOverrides(o.Payload.Items, toItemOverrides(in.Overrides[id]), target)
			o.Status = target
			o.UpdatedAt = now
			if becameDelivered {
				o.DeliveredAt = &now
				p, w, err := uc.buildSupplyPlans(r, o)
				if err != nil {
					failed = append(failed, dto.BulkFailure{OrderID: id, Error: err.Error()})
					continue
				}
				plans = append(plans, p...)
				warnings = append(warnings, w...)
			}
			toWrite = append(toWrite, o)
		}
		n, err := r.Orders.UpdateBatch(toWrite)
		updated = n
		if err != nil {
			// Escritura parcial: los pedidos ya escritos quedan, el resto se reporta.
			warnings = append(warnings, fmt.Sprintf("escritura parcial (%d de %d): %v", n, len(toWrite), err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, uc.registerSupplies(ctx, plans)...)

	return &dto.BulkUpdateOrdersResponse{
		Updated:  updated,
		Failed:   failed,
		Warnings: warnings,
	}, nil
}

// ExportPDF genera la hoja de compra imprimible del pedido. Misma regla de
// visibilidad que GetByID.
func (uc *UseCase) ExportPDF(ctx context.Context, restaurantID string, actor Actor, id string) ([]byte, error) {
	var (
		o    *order.Order
		name string
	)
	err := uc.runner.WithRestaurant(ctx, restaurantID, func(r *repository.Tenant) error {
		x, err := r.Orders.GetByID(id)
		if err != nil {
			return err
		}
		if x == nil {
			return domain.ErrNotFound
		}
		assignments, err := r.Assignments.ListByUser(actor.UserID)
		if err != nil {
			return err
		}
		if !visibleTo(actor, assignments, x) {
			return domain.ErrNotFound
		}
		rest, err := r.Restaurant.Get()
		if err != nil {
			return err
		}
		if rest != nil {
			name = rest.Name
		}
		o = x
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateOrderPDF(ctx, o, name)
}

// visibleTo decide si el actor puede ver el pedido dado su alcance.
func visibleTo(actor Actor, assignments []entity.SectionAssignment, o *order.Order) bool {
	if order.VisibleScope(actor.Role, assignments) == order.ScopeAll {
		return true
	}
	if o.CreatedByUserID == actor.UserID {
		return true
	}
	for _, a := range assignments {
		if a.SectionName == o.Payload.Department {
			return true
		}
	}
	return false
}

// ── Efecto secundario: registro de suministro en el POS ──────────────────────

// supplyPlan es un acta de suministro lista para enviar, construida dentro del
// contexto de tenant pero enviada fuera de él: la llamada HTTP no debe retener
// una conexión del pool.
type supplyPlan struct {
	orderID string
	creds   poster.Credentials
	req     poster.SupplyRequest
}

// buildSupplyPlans traduce un pedido entregado a actas de suministro Poster,
// una por proveedor. Los ítems sin ingrediente Poster o sin proveedor
// vinculado se omiten con advertencia: el registro es best-effort.
func (uc *UseCase) buildSupplyPlans(r *repository.Tenant, o *order.Order) ([]supplyPlan, []string, error) {
	rest, err := r.Restaurant.Get()
	if err != nil {
		return nil, nil, err
	}
	if rest == nil || rest.PosterToken == "" {
		return nil, []string{"restaurante sin cuenta Poster vinculada; suministro no registrado"}, nil
	}
	creds := poster.Credentials{Account: rest.PosterAccount, Token: rest.PosterToken}

	var storageID int64
	section, err := r.Sections.GetByName(o.Payload.Department)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case section != nil && section.PosterStorageID != nil:
		storageID = *section.PosterStorageID
	case rest.KitchenStorageID != nil:
		storageID = *rest.KitchenStorageID
	default:
		return nil, []string{fmt.Sprintf("la sección %q no tiene almacén Poster; suministro no registrado", o.Payload.Department)}, nil
	}

	var warnings []string
	bySupplier := make(map[int64][]poster.SupplyItem)
	for _, it := range o.Payload.Items {
		if it.PosterIngredientID == nil {
			warnings = append(warnings, fmt.Sprintf("ítem %q sin ingrediente Poster; omitido del suministro", it.Name))
			continue
		}
		supplierID, err := resolvePosterSupplier(r, it)
		if err != nil {
			return nil, nil, err
		}
		if supplierID == 0 {
			warnings = append(warnings, fmt.Sprintf("ítem %q sin proveedor Poster; omitido del suministro", it.Name))
			continue
		}
		qty := it.Quantity
		if it.ReceivedQuantity != nil {
			qty = *it.ReceivedQuantity
		}
		price := decimalZeroIfNil(it.ReceivedPrice)
		bySupplier[supplierID] = append(bySupplier[supplierID], poster.SupplyItem{
			IngredientID: *it.PosterIngredientID,
			Quantity:     qty,
			Price:        price,
		})
	}

	date := time.Now().Format(supplyDateLayout)
	if o.DeliveredAt != nil {
		date = o.DeliveredAt.Format(supplyDateLayout)
	}
	plans := make([]supplyPlan, 0, len(bySupplier))
	for supplierID, items := range bySupplier {
		plans = append(plans, supplyPlan{
			orderID: o.ID,
			creds:   creds,
			req: poster.SupplyRequest{
				SupplierID: supplierID,
				StorageID:  storageID,
				Date:       date,
				Items:      items,
			},
		})
	}
	return plans, warnings, nil
}

// resolvePosterSupplier devuelve el supplier_id Poster del ítem: por referencia
// directa si la trae, por nombre exacto si no. Cero significa "sin proveedor".
func resolvePosterSupplier(r *repository.Tenant, it order.Item) (int64, error) {
	var sup *entity.Supplier
	var err error
	switch {
	case it.SupplierID != nil:
		sup, err = r.Suppliers.GetByID(*it.SupplierID)
	case it.SupplierName != "":
		sup, err = r.Suppliers.GetByName(it.SupplierName)
	}
	if err != nil {
		return 0, err
	}
	if sup == nil || sup.PosterSupplierID == nil {
		return 0, nil
	}
	return *sup.PosterSupplierID, nil
}

// registerSupplies envía las actas al POS. Cualquier fallo se degrada a
// advertencia: la transición local ya está confirmada y no se revierte.
func (uc *UseCase) registerSupplies(ctx context.Context, plans []supplyPlan) []string {
	var warnings []string
	for _, p := range plans {
		callCtx, cancel := context.WithTimeout(ctx, uc.posTimeout)
		confirmation, err := uc.pos.CreateSupply(callCtx, p.creds, p.req)
		cancel()
		if err != nil {
			uc.log.Warn().Err(err).Str("order_id", p.orderID).Msg("no se pudo registrar el suministro en Poster")
			warnings = append(warnings, fmt.Sprintf("pedido %s: el suministro no se registró en Poster: %v", p.orderID, err))
			continue
		}
		uc.log.Info().Str("order_id", p.orderID).Str("supply_id", confirmation).Msg("suministro registrado en Poster")
	}
	return warnings
}

func decimalZeroIfNil(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ── Mapeos DTO ────────────────────────────────────────────────────────────────

func toDomainItems(in []dto.OrderItemRequest) []order.Item {
	items := make([]order.Item, 0, len(in))
	for _, it := range in {
		items = append(items, order.Item{
			Name:               it.Name,
			Quantity:           it.Quantity,
			Unit:               it.Unit,
			Category:           it.Category,
			SupplierID:         it.SupplierID,
			SupplierName:       it.SupplierName,
			PosterIngredientID: it.PosterIngredientID,
		})
	}
	return items
}

func toItemOverrides(in []dto.ItemOverrideRequest) []order.ItemOverride {
	if len(in) == 0 {
		return nil
	}
	overrides := make([]order.ItemOverride, 0, len(in))
	for _, ov := range in {
		overrides = append(overrides, order.ItemOverride{Name: ov.Name, Quantity: ov.Quantity, Price: ov.Price})
	}
	return overrides
}

func toOrderResponse(o *order.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Payload.Items))
	for _, it := range o.Payload.Items {
		items = append(items, dto.OrderItemResponse{
			Name:               it.Name,
			Quantity:           it.Quantity,
			Unit:               it.Unit,
			Category:           it.Category,
			SupplierID:         it.SupplierID,
			SupplierName:       it.SupplierName,
			PosterIngredientID: it.PosterIngredientID,
			ReceivedQuantity:   it.ReceivedQuantity,
			ReceivedPrice:      it.ReceivedPrice,
		})
	}
	return &dto.OrderResponse{
		ID:              o.ID,
		Status:          string(o.Status),
		Department:      o.Payload.Department,
		Note:            o.Payload.Note,
		Items:           items,
		CreatedByRole:   o.CreatedByRole,
		CreatedByUserID: o.CreatedByUserID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		DeliveredAt:     o.DeliveredAt,
	}
}
