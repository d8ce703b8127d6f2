package repository

import "context"

// Tenant agrupa los repositorios atados a un contexto de restaurante. Toda
// consulta hecha a través de ellos queda restringida al restaurante fijado al
// adquirir el handle; no hace falta (ni es posible) pasar el tenant por
// parámetro.
type Tenant struct {
	Restaurant  RestaurantRepository
	Sections    SectionRepository
	Suppliers   SupplierRepository
	Products    ProductRepository
	Orders      OrderRepository
	Assignments SectionAssignmentRepository
	SyncStatus  SyncStatusRepository
	Users       UserRepository
}

// Global agrupa las pocas consultas legítimamente sin tenant: autenticar por
// email y resolver un restaurante por su cuenta Poster durante la vinculación.
type Global struct {
	Users       UserRepository
	Restaurants RestaurantDirectory
}

// TenantRunner es el guardián de contexto de tenant. Adquiere una conexión del
// pool, la fija al restaurante indicado y la libera en todo camino de salida
// (éxito, error o pánico): no liberarla agota el pool bajo carga.
type TenantRunner interface {
	// WithRestaurant ejecuta fn con repos fijados al restaurante. Cada
	// sentencia se confirma por separado (autocommit).
	WithRestaurant(ctx context.Context, restaurantID string, fn func(r *Tenant) error) error
	// WithRestaurantTx es la variante transaccional: mismo fijado de tenant
	// dentro de un límite atómico commit/rollback.
	WithRestaurantTx(ctx context.Context, restaurantID string, fn func(r *Tenant) error) error
	// WithoutRestaurant ejecuta fn sin restricción de tenant. Reservado a las
	// operaciones globales de Global; no usar para datos de restaurante.
	WithoutRestaurant(ctx context.Context, fn func(g *Global) error) error
}
