package sync_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/zhanikpanik/restaurant-checklist-sub002/internal/application/sync"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/infrastructure/poster"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRestaurant struct {
	repository.RestaurantRepository
	rest *entity.Restaurant
}

func (f *fakeRestaurant) Get() (*entity.Restaurant, error) { return f.rest, nil }

type fakeSections struct {
	repository.SectionRepository
	sections []*entity.Section
	created  []*entity.Section
	updated  []*entity.Section
}

func (f *fakeSections) GetByPosterStorageID(id int64) (*entity.Section, error) {
	for _, s := range f.sections {
		if s.PosterStorageID != nil && *s.PosterStorageID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSections) ListLinked() ([]*entity.Section, error) {
	var out []*entity.Section
	for _, s := range f.sections {
		if s.IsActive && s.PosterStorageID != nil {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSections) Create(s *entity.Section) error {
	f.sections = append(f.sections, s)
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSections) Update(s *entity.Section) error {
	f.updated = append(f.updated, s)
	return nil
}

type fakeProducts struct {
	repository.ProductRepository
	products []*entity.Product
	created  []*entity.Product
	updated  []*entity.Product
}

func (f *fakeProducts) GetByPosterIngredientID(sectionID string, id int64) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SectionID == sectionID && p.PosterIngredientID != nil && *p.PosterIngredientID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProducts) Create(p *entity.Product) error {
	f.products = append(f.products, p)
	f.created = append(f.created, p)
	return nil
}

func (f *fakeProducts) Update(p *entity.Product) error {
	f.updated = append(f.updated, p)
	return nil
}

type fakeSuppliers struct {
	repository.SupplierRepository
	suppliers []*entity.Supplier
	created   []*entity.Supplier
	updated   []*entity.Supplier
}

func (f *fakeSuppliers) GetByPosterSupplierID(id int64) (*entity.Supplier, error) {
	for _, s := range f.suppliers {
		if s.PosterSupplierID != nil && *s.PosterSupplierID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSuppliers) GetByName(name string) (*entity.Supplier, error) {
	for _, s := range f.suppliers {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSuppliers) Create(s *entity.Supplier) error {
	f.suppliers = append(f.suppliers, s)
	f.created = append(f.created, s)
	return nil
}

func (f *fakeSuppliers) Update(s *entity.Supplier) error {
	f.updated = append(f.updated, s)
	return nil
}

type fakeSyncStatus struct {
	repository.SyncStatusRepository
	touched map[string]time.Time
}

func (f *fakeSyncStatus) Touch(entityType string, at time.Time) error {
	if f.touched == nil {
		f.touched = make(map[string]time.Time)
	}
	f.touched[entityType] = at
	return nil
}

func (f *fakeSyncStatus) List() ([]*entity.SyncStatus, error) {
	var out []*entity.SyncStatus
	for entityType, at := range f.touched {
		out = append(out, &entity.SyncStatus{EntityType: entityType, LastSyncedAt: at})
	}
	return out, nil
}

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

// fakePOS respuestas configurables por método.
type fakePOS struct {
	storages     []poster.Storage
	storagesErr  error
	ingredients  []poster.Ingredient
	suppliers    []poster.Supplier
	suppliersErr error
	// leftovers por almacén; un error por almacén simula un endpoint caído.
	leftovers    map[int64][]poster.StockItem
	leftoversErr map[int64]error
}

func (f *fakePOS) Storages(context.Context, poster.Credentials) ([]poster.Storage, error) {
	return f.storages, f.storagesErr
}

func (f *fakePOS) Ingredients(context.Context, poster.Credentials) ([]poster.Ingredient, error) {
	return f.ingredients, nil
}

func (f *fakePOS) StorageLeftovers(_ context.Context, _ poster.Credentials, storageID int64) ([]poster.StockItem, error) {
	if err := f.leftoversErr[storageID]; err != nil {
		return nil, err
	}
	return f.leftovers[storageID], nil
}

func (f *fakePOS) Suppliers(context.Context, poster.Credentials) ([]poster.Supplier, error) {
	return f.suppliers, f.suppliersErr
}

func (f *fakePOS) CreateSupply(context.Context, poster.Credentials, poster.SupplyRequest) (string, error) {
	panic("no usado en estos tests")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const restID = "00000000-0000-0000-0000-00000000000a"

func i64(v int64) *int64 { return &v }

// Los tipos de respuesta Poster solo se deserializan; los fixtures se
// construyen pasando por el mismo JSON que produciría la API.

func mustStorage(id int64, name string) poster.Storage {
	var s poster.Storage
	mustUnmarshal(fmt.Sprintf(`{"storage_id":"%d","storage_name":%q}`, id, name), &s)
	return s
}

func mustIngredient(id int64, name, unit string) poster.Ingredient {
	var ing poster.Ingredient
	mustUnmarshal(fmt.Sprintf(`{"ingredient_id":"%d","ingredient_name":%q,"ingredient_unit":%q}`, id, name, unit), &ing)
	return ing
}

func mustStock(ingredientID int64) poster.StockItem {
	var st poster.StockItem
	mustUnmarshal(fmt.Sprintf(`{"ingredient_id":"%d","storage_ingredient_left":"1"}`, ingredientID), &st)
	return st
}

func mustSupplier(id int64, name string) poster.Supplier {
	var s poster.Supplier
	mustUnmarshal(fmt.Sprintf(`{"supplier_id":"%d","supplier_name":%q}`, id, name), &s)
	return s
}

func mustUnmarshal(data string, v interface{}) {
	if err := json.Unmarshal([]byte(data), v); err != nil {
		panic(err)
	}
}

type fixture struct {
	rc        *appsync.Reconciler
	pos       *fakePOS
	sections  *fakeSections
	products  *fakeProducts
	suppliers *fakeSuppliers
	status    *fakeSyncStatus
}

func newFixture(t *testing.T, pos *fakePOS, sections []*entity.Section, products []*entity.Product, suppliers []*entity.Supplier) *fixture {
	t.Helper()
	fx := &fixture{
		pos:       pos,
		sections:  &fakeSections{sections: sections},
		products:  &fakeProducts{products: products},
		suppliers: &fakeSuppliers{suppliers: suppliers},
		status:    &fakeSyncStatus{},
	}
	tenant := &repository.Tenant{
		Restaurant: &fakeRestaurant{rest: &entity.Restaurant{
			ID:            restID,
			Name:          "La Terraza",
			PosterAccount: "terraza",
			PosterToken:   "tok",
		}},
		Sections:   fx.sections,
		Products:   fx.products,
		Suppliers:  fx.suppliers,
		SyncStatus: fx.status,
	}
	fx.rc = appsync.NewReconciler(&fakeRunner{tenant: tenant}, pos, zerolog.Nop(), time.Second, 24*time.Hour)
	return fx
}

// linkedSection sección ya vinculada a un almacén Poster.
func linkedSection(id, name string, storageID int64) *entity.Section {
	return &entity.Section{ID: id, RestaurantID: restID, Name: name, PosterStorageID: i64(storageID), IsActive: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_SeccionesUpsertIdempotente(t *testing.T) {
	pos := &fakePOS{storages: []poster.Storage{
		mustStorage(7, "Кухня"),
		mustStorage(8, "Бар"),
	}}
	fx := newFixture(t, pos, []*entity.Section{linkedSection("sec-1", "Cocina vieja", 7)}, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntitySections)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created, "el almacén 8 no existía")
	assert.Equal(t, 1, res.Updated, "el almacén 7 cambió de nombre")
	assert.Contains(t, fx.status.touched, entity.SyncEntitySections)

	// Segunda pasada sin cambios upstream: diff vacío, staleness igualmente tocado.
	first := fx.status.touched[entity.SyncEntitySections]
	res, err = fx.rc.Reconcile(context.Background(), restID, entity.SyncEntitySections)
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.Updated)
	assert.False(t, fx.status.touched[entity.SyncEntitySections].Before(first))
}

func TestReconcile_SeccionDesactivadaPresenteUpstreamSeReactiva(t *testing.T) {
	pos := &fakePOS{storages: []poster.Storage{mustStorage(7, "Cocina")}}
	dormida := linkedSection("sec-1", "Cocina", 7)
	dormida.IsActive = false
	fx := newFixture(t, pos, []*entity.Section{dormida}, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntitySections)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Updated, "la reactivación cuenta como actualización")
	assert.Zero(t, res.Created, "no debe duplicarse la sección por estar inactiva")
	require.Len(t, fx.sections.updated, 1)
	assert.True(t, fx.sections.updated[0].IsActive,
		"una sección presente en el POS vuelve a activarse aunque un operador la apagara")
}

func TestReconcile_IngredientesBootstrapConAlmacenVacio(t *testing.T) {
	pos := &fakePOS{
		ingredients: []poster.Ingredient{
			mustIngredient(1, "Harina", "kg"),
			mustIngredient(2, "Aceite", "l"),
			mustIngredient(3, "Sal", "kg"),
		},
		leftovers: map[int64][]poster.StockItem{7: {}},
	}
	fx := newFixture(t, pos, []*entity.Section{linkedSection("sec-1", "Cocina", 7)}, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntityIngredients)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created, "almacén vacío = no poblado: se siembra el catálogo completo")
	assert.Contains(t, fx.status.touched, entity.SyncEntityIngredients)
}

func TestReconcile_IngredientesEstadoEstableSoloLosDelStock(t *testing.T) {
	pos := &fakePOS{
		ingredients: []poster.Ingredient{
			mustIngredient(1, "Harina", "kg"),
			mustIngredient(2, "Aceite", "l"),
			mustIngredient(3, "Sal", "kg"),
		},
		leftovers: map[int64][]poster.StockItem{7: {mustStock(1), mustStock(3)}},
	}
	fx := newFixture(t, pos, []*entity.Section{linkedSection("sec-1", "Cocina", 7)}, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntityIngredients)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created, "solo lo presente en el stock del almacén")
	names := []string{fx.products.created[0].Name, fx.products.created[1].Name}
	assert.ElementsMatch(t, []string{"Harina", "Sal"}, names)
}

func TestReconcile_StockCaidoDeUnaSeccionNoAbortaLasDemas(t *testing.T) {
	pos := &fakePOS{
		ingredients: []poster.Ingredient{mustIngredient(1, "Harina", "kg")},
		leftovers:   map[int64][]poster.StockItem{8: {mustStock(1)}},
		leftoversErr: map[int64]error{
			7: &poster.FetchError{Method: "storage.getStorageLeftovers", Err: assert.AnError},
		},
	}
	fx := newFixture(t, pos, []*entity.Section{
		linkedSection("sec-1", "Cocina", 7),
		linkedSection("sec-2", "Barra", 8),
	}, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntityIngredients)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created, "la sección sana se reconcilió")
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "sec-2", fx.products.created[0].SectionID)
}

func TestReconcile_FalloDeLecturaNoTocaStaleness(t *testing.T) {
	pos := &fakePOS{storagesErr: &poster.FetchError{Method: "storage.getStorages", Err: assert.AnError}}
	fx := newFixture(t, pos, nil, nil, nil)

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntitySections)
	require.NoError(t, err, "el fallo de lectura es parcial, no fatal")
	assert.NotEmpty(t, res.Error)
	assert.NotContains(t, fx.status.touched, entity.SyncEntitySections, "un tipo fallido no reinicia su staleness")
}

func TestReconcileAll_FalloDeUnTipoNoAbortaLosDemas(t *testing.T) {
	pos := &fakePOS{
		storagesErr: &poster.FetchError{Method: "storage.getStorages", Err: assert.AnError},
		suppliers:   []poster.Supplier{mustSupplier(12, "Molinos SA")},
	}
	fx := newFixture(t, pos, nil, nil, nil)

	summary, err := fx.rc.ReconcileAll(context.Background(), restID)
	require.NoError(t, err)
	require.Len(t, summary.Results, 3)
	assert.NotEmpty(t, summary.Results[0].Error, "secciones falló")
	assert.Empty(t, summary.Results[2].Error, "proveedores siguió adelante")
	assert.Equal(t, 1, summary.Results[2].Created)
	assert.Contains(t, fx.status.touched, entity.SyncEntitySuppliers)
}

func TestReconcile_ProveedorLocalConMismoNombreSeAdopta(t *testing.T) {
	pos := &fakePOS{suppliers: []poster.Supplier{mustSupplier(12, "Molinos SA")}}
	local := &entity.Supplier{ID: "sup-1", RestaurantID: restID, Name: "Molinos SA", IsActive: true}
	fx := newFixture(t, pos, nil, nil, []*entity.Supplier{local})

	res, err := fx.rc.Reconcile(context.Background(), restID, entity.SyncEntitySuppliers)
	require.NoError(t, err)
	assert.Zero(t, res.Created, "no se duplica el proveedor local")
	assert.Equal(t, 1, res.Updated)
	require.NotNil(t, local.PosterSupplierID)
	assert.Equal(t, int64(12), *local.PosterSupplierID)
}

func TestStatus_TipoNuncaSincronizadoEsStale(t *testing.T) {
	fx := newFixture(t, &fakePOS{}, nil, nil, nil)
	fx.status.Touch(entity.SyncEntitySections, time.Now())

	statuses, err := fx.rc.Status(context.Background(), restID)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	byType := make(map[string]bool)
	for _, s := range statuses {
		byType[s.EntityType] = s.Stale
	}
	assert.False(t, byType[entity.SyncEntitySections])
	assert.True(t, byType[entity.SyncEntityIngredients])
	assert.True(t, byType[entity.SyncEntitySuppliers])
}
