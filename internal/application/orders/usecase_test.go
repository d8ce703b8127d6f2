package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/dto"
	apporders "github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/orders"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrders repositorio de pedidos en memoria.
type fakeOrders struct {
	byID map[string]*order.Order
	// failOn simula un fallo de escritura para un ID concreto en UpdateBatch.
	failOn string
}

func newFakeOrders(orders ...*order.Order) *fakeOrders {
	f := &fakeOrders{byID: make(map[string]*order.Order)}
	for _, o := range orders {
		f.byID[o.ID] = o
	}
	return f
}

func (f *fakeOrders) Create(o *order.Order) error { f.byID[o.ID] = o; return nil }

func (f *fakeOrders) GetByID(id string) (*order.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrders) List(filter repository.OrderFilter) ([]*order.Order, error) {
	var out []*order.Order
	for _, o := range f.byID {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, o.Status) {
			continue
		}
		if filter.CreatedByUserID != "" || len(filter.Departments) > 0 {
			mine := o.CreatedByUserID == filter.CreatedByUserID
			for _, d := range filter.Departments {
				if d == o.Payload.Department {
					mine = true
				}
			}
			if !mine {
				continue
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrders) Update(o *order.Order) error {
	cp := *o
	f.byID[o.ID] = &cp
	return nil
}

func (f *fakeOrders) UpdateBatch(orders []*order.Order) (int, error) {
	n := 0
	for _, o := range orders {
		if o.ID == f.failOn {
			return n, assert.AnError
		}
		cp := *o
		f.byID[o.ID] = &cp
		n++
	}
	return n, nil
}

func containsStatus(ss []order.Status, s order.Status) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// fakeAssignments devuelve asignaciones fijas por usuario. Los métodos no
// usados por el caso de uso quedan en la interfaz embebida (nil).
type fakeAssignments struct {
	repository.SectionAssignmentRepository
	byUser map[string][]entity.SectionAssignment
}

func (f *fakeAssignments) ListByUser(userID string) ([]entity.SectionAssignment, error) {
	return f.byUser[userID], nil
}

type fakeSections struct {
	repository.SectionRepository
	byName map[string]*entity.Section
}

func (f *fakeSections) GetByName(name string) (*entity.Section, error) {
	return f.byName[name], nil
}

type fakeSuppliers struct {
	repository.SupplierRepository
	byID   map[string]*entity.Supplier
	byName map[string]*entity.Supplier
}

func (f *fakeSuppliers) GetByID(id string) (*entity.Supplier, error)     { return f.byID[id], nil }
func (f *fakeSuppliers) GetByName(name string) (*entity.Supplier, error) { return f.byName[name], nil }

type fakeRestaurant struct {
	repository.RestaurantRepository
	rest *entity.Restaurant
}

func (f *fakeRestaurant) Get() (*entity.Restaurant, error) { return f.rest, nil }

// fakeRunner entrega el mismo conjunto de repos para autocommit y transacción:
// suficiente para probar la lógica de transición.
type fakeRunner struct {
	tenant *repository.Tenant
}

func (f *fakeRunner) WithRestaurant(_ context.Context, _ string, fn func(*repository.Tenant) error) error {
	return fn(f.tenant)
}

func (f *fakeRunner) WithRestaurantTx(_ context.Context, _ string, fn func(*repository.Tenant) error) error {
	return fn(f.tenant)
}

func (f *fakeRunner) WithoutRestaurant(_ context.Context, _ func(*repository.Global) error) error {
	panic("no usado en estos tests")
}

// fakePOS registra las actas de suministro recibidas.
type fakePOS struct {
	supplies []poster.SupplyRequest
	err      error
}

func (f *fakePOS) Storages(context.Context, poster.Credentials) ([]poster.Storage, error) {
	return nil, nil
}
func (f *fakePOS) Ingredients(context.Context, poster.Credentials) ([]poster.Ingredient, error) {
	return nil, nil
}
func (f *fakePOS) StorageLeftovers(context.Context, poster.Credentials, int64) ([]poster.StockItem, error) {
	return nil, nil
}
func (f *fakePOS) Suppliers(context.Context, poster.Credentials) ([]poster.Supplier, error) {
	return nil, nil
}
func (f *fakePOS) CreateSupply(_ context.Context, _ poster.Credentials, s poster.SupplyRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.supplies = append(f.supplies, s)
	return "777", nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const (
	restID     = "00000000-0000-0000-0000-00000000000a"
	staffID    = "00000000-0000-0000-0000-000000000001"
	managerID  = "00000000-0000-0000-0000-000000000002"
	strangerID = "00000000-0000-0000-0000-000000000003"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
func i64(v int64) *int64   { return &v }
func str(v string) *string { return &v }

func pendingOrder(id, creator, department string) *order.Order {
	now := time.Now().Add(-time.Hour)
	return &order.Order{
		ID:              id,
		RestaurantID:    restID,
		Status:          order.StatusPending,
		Payload: order.Payload{
			Department: department,
			Items: []order.Item{
				{Name: "Harina", Quantity: dec("5"), Unit: "kg", SupplierName: "Molinos SA", PosterIngredientID: i64(41)},
			},
		},
		CreatedByRole:   entity.RoleStaff,
		CreatedByUserID: creator,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

type fixture struct {
	uc     *apporders.UseCase
	orders *fakeOrders
	pos    *fakePOS
}

func newFixture(t *testing.T, orders *fakeOrders, caps map[string][]entity.SectionAssignment) *fixture {
	t.Helper()
	pos := &fakePOS{}
	tenant := &repository.Tenant{
		Restaurant: &fakeRestaurant{rest: &entity.Restaurant{
			ID:            restID,
			Name:          "La Terraza",
			PosterAccount: "terraza",
			PosterToken:   "tok",
		}},
		Sections: &fakeSections{byName: map[string]*entity.Section{
			"Cocina": {ID: "sec-1", Name: "Cocina", PosterStorageID: i64(7)},
		}},
		Suppliers: &fakeSuppliers{
			byName: map[string]*entity.Supplier{
				"Molinos SA": {ID: "sup-1", Name: "Molinos SA", PosterSupplierID: i64(12)},
			},
			byID: map[string]*entity.Supplier{},
		},
		Orders:      orders,
		Assignments: &fakeAssignments{byUser: caps},
	}
	uc := apporders.NewUseCase(&fakeRunner{tenant: tenant}, pos, nil, zerolog.Nop(), time.Second)
	return &fixture{uc: uc, orders: orders, pos: pos}
}

func sender(userID string) map[string][]entity.SectionAssignment {
	return map[string][]entity.SectionAssignment{
		userID: {{UserID: userID, SectionID: "sec-1", SectionName: "Cocina", CanSendOrders: true, CanReceive: true}},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PedidoNaceEnPending(t *testing.T) {
	fx := newFixture(t, newFakeOrders(), nil)
	resp, err := fx.uc.Create(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, dto.CreateOrderRequest{
		Department: "Cocina",
		Items: []dto.OrderItemRequest{
			{Name: "Harina", Quantity: dec("5"), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Nil(t, resp.DeliveredAt)
}

func TestCreate_RechazaPayloadSinItems(t *testing.T) {
	fx := newFixture(t, newFakeOrders(), nil)
	_, err := fx.uc.Create(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, dto.CreateOrderRequest{
		Department: "Cocina",
	})
	require.ErrorIs(t, err, order.ErrEmptyItems)
}

func TestUpdate_StaffConCapacidadEnvia(t *testing.T) {
	fx := newFixture(t, newFakeOrders(pendingOrder("o1", staffID, "Cocina")), sender(staffID))
	resp, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, "o1", dto.UpdateOrderRequest{
		Status: str("sent"),
	})
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
	assert.Nil(t, resp.DeliveredAt)
	assert.Empty(t, fx.pos.supplies, "enviar no registra suministro")
}

func TestUpdate_StaffSinCapacidadNoEnvia(t *testing.T) {
	fx := newFixture(t, newFakeOrders(pendingOrder("o1", staffID, "Cocina")), nil)
	_, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, "o1", dto.UpdateOrderRequest{
		Status: str("sent"),
	})
	require.ErrorIs(t, err, order.ErrSendNotAllowed)
}

func TestUpdate_EstadoTerminalRechazaInclusoAdmin(t *testing.T) {
	o := pendingOrder("o1", staffID, "Cocina")
	o.Status = order.StatusCancelled
	fx := newFixture(t, newFakeOrders(o), nil)
	_, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: managerID, Role: entity.RoleAdmin}, "o1", dto.UpdateOrderRequest{
		Status: str("sent"),
	})
	require.ErrorIs(t, err, order.ErrInvalidState)
}

func TestUpdate_EntregaRegistraSuministroEnPoster(t *testing.T) {
	o := pendingOrder("o1", staffID, "Cocina")
	o.Status = order.StatusSent
	fx := newFixture(t, newFakeOrders(o), sender(staffID))

	resp, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, "o1", dto.UpdateOrderRequest{
		Status: str("delivered"),
	})
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)
	require.NotNil(t, resp.DeliveredAt)
	assert.Empty(t, resp.Warnings)

	require.Len(t, fx.pos.supplies, 1)
	sup := fx.pos.supplies[0]
	assert.Equal(t, int64(12), sup.SupplierID)
	assert.Equal(t, int64(7), sup.StorageID)
	require.Len(t, sup.Items, 1)
	assert.Equal(t, int64(41), sup.Items[0].IngredientID)
	assert.True(t, sup.Items[0].Quantity.Equal(dec("5")))
}

func TestUpdate_FalloDelPOSDegradaAAdvertencia(t *testing.T) {
	o := pendingOrder("o1", staffID, "Cocina")
	o.Status = order.StatusSent
	fx := newFixture(t, newFakeOrders(o), sender(staffID))
	fx.pos.err = &poster.FetchError{Method: "storage.createSupply", Err: assert.AnError}

	resp, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, "o1", dto.UpdateOrderRequest{
		Status: str("delivered"),
	})
	require.NoError(t, err, "el fallo del POS nunca revierte la transición local")
	assert.Equal(t, "delivered", resp.Status)
	require.NotEmpty(t, resp.Warnings)

	persisted, _ := fx.orders.GetByID("o1")
	assert.Equal(t, order.StatusDelivered, persisted.Status)
}

func TestUpdate_MergeConservaCamposOmitidos(t *testing.T) {
	o := pendingOrder("o1", staffID, "Cocina")
	o.Payload.Note = "urgente"
	fx := newFixture(t, newFakeOrders(o), sender(staffID))

	resp, err := fx.uc.Update(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, "o1", dto.UpdateOrderRequest{
		Department: str("Cocina"),
	})
	require.NoError(t, err)
	assert.Equal(t, "urgente", resp.Note, "la nota omitida no se anula")
	assert.Len(t, resp.Items, 1)
}

func TestBulkUpdate_ToleranciaPorPedido(t *testing.T) {
	o1 := pendingOrder("o1", staffID, "Cocina")
	o2 := pendingOrder("o2", staffID, "Cocina")
	o2.Status = order.StatusCancelled // transición prohibida
	fx := newFixture(t, newFakeOrders(o1, o2), sender(staffID))

	resp, err := fx.uc.BulkUpdate(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, dto.BulkUpdateOrdersRequest{
		OrderIDs: []string{"o1", "o2", "o3"},
		Status:   "sent",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)
	require.Len(t, resp.Failed, 2)

	persisted, _ := fx.orders.GetByID("o1")
	assert.Equal(t, order.StatusSent, persisted.Status, "el fallo de o2/o3 no impide o1")
}

func TestBulkUpdate_EntregaConCorreccionDeCantidad(t *testing.T) {
	o := pendingOrder("o1", staffID, "Cocina")
	o.Status = order.StatusSent
	fx := newFixture(t, newFakeOrders(o), sender(staffID))

	resp, err := fx.uc.BulkUpdate(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, dto.BulkUpdateOrdersRequest{
		OrderIDs: []string{"o1"},
		Status:   "delivered",
		Overrides: map[string][]dto.ItemOverrideRequest{
			"o1": {{Name: "Harina", Quantity: decPtr("4.5"), Price: decPtr("120")}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)

	persisted, _ := fx.orders.GetByID("o1")
	it := persisted.Payload.Items[0]
	assert.True(t, it.Quantity.Equal(dec("5")), "la cantidad pedida no se pierde")
	require.NotNil(t, it.ReceivedQuantity)
	assert.True(t, it.ReceivedQuantity.Equal(dec("4.5")))
	require.NotNil(t, persisted.DeliveredAt)

	// El acta lleva la cantidad recibida, no la pedida.
	require.Len(t, fx.pos.supplies, 1)
	assert.True(t, fx.pos.supplies[0].Items[0].Quantity.Equal(dec("4.5")))
	assert.True(t, fx.pos.supplies[0].Items[0].Price.Equal(dec("120")))
}

func TestBulkUpdate_CorreccionNoContaminaOtrosPedidos(t *testing.T) {
	// Dos pedidos con el mismo ítem "Harina": la corrección de o1 no debe
	// tocar la cantidad recibida de o2.
	o1 := pendingOrder("o1", staffID, "Cocina")
	o1.Status = order.StatusSent
	o2 := pendingOrder("o2", staffID, "Cocina")
	o2.Status = order.StatusSent
	fx := newFixture(t, newFakeOrders(o1, o2), sender(staffID))

	resp, err := fx.uc.BulkUpdate(context.Background(), restID, apporders.Actor{UserID: staffID, Role: entity.RoleStaff}, dto.BulkUpdateOrdersRequest{
		OrderIDs: []string{"o1", "o2"},
		Status:   "delivered",
		Overrides: map[string][]dto.ItemOverrideRequest{
			"o1": {{Name: "Harina", Quantity: decPtr("4.5")}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Updated)

	p1, _ := fx.orders.GetByID("o1")
	require.NotNil(t, p1.Payload.Items[0].ReceivedQuantity)
	assert.True(t, p1.Payload.Items[0].ReceivedQuantity.Equal(dec("4.5")))

	p2, _ := fx.orders.GetByID("o2")
	assert.Nil(t, p2.Payload.Items[0].ReceivedQuantity,
		"o2 no tiene corrección: su cantidad recibida queda sin fijar")

	// Cada acta de suministro lleva la cantidad del pedido al que pertenece:
	// una con la corrección (4.5) y otra con lo pedido (5).
	require.Len(t, fx.pos.supplies, 2)
	var qtys []string
	for _, s := range fx.pos.supplies {
		qtys = append(qtys, s.Items[0].Quantity.String())
	}
	assert.ElementsMatch(t, []string{"4.5", "5"}, qtys)
}

func TestList_AlcanceRestringidoVeSoloLoSuyo(t *testing.T) {
	mine := pendingOrder("o1", strangerID, "Barra")
	other := pendingOrder("o2", staffID, "Cocina")
	fx := newFixture(t, newFakeOrders(mine, other), nil)

	resp, err := fx.uc.List(context.Background(), restID, apporders.Actor{UserID: strangerID, Role: entity.RoleDelivery}, dto.ListOrdersRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "o1", resp.Items[0].ID)
}

func TestGetByID_PedidoAjenoEsNotFound(t *testing.T) {
	fx := newFixture(t, newFakeOrders(pendingOrder("o1", staffID, "Cocina")), nil)
	_, err := fx.uc.GetByID(context.Background(), restID, apporders.Actor{UserID: strangerID, Role: entity.RoleDelivery}, "o1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
