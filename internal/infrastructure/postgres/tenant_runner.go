package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

var _ repository.TenantRunner = (*TenantRunner)(nil)

// TenantRunner implementa el guardián de contexto de tenant sobre pgx.
//
// Al adquirir una conexión del pool fija la variable de sesión
// app.restaurant_id; las políticas row-level security de cada tabla de
// restaurante la leen, de modo que el filtrado ocurre en la capa de datos y un
// error de programación en una consulta no puede filtrar filas de otro tenant.
// Los repositorios añaden además el mismo predicado en sus WHERE (cinturón y
// tirantes). La conexión se limpia y se libera en todo camino de salida.
type TenantRunner struct {
	pool *pgxpool.Pool
}

// NewTenantRunner construye el runner con el pool.
func NewTenantRunner(pool *pgxpool.Pool) *TenantRunner {
	return &TenantRunner{pool: pool}
}

// newTenantRepos ata el conjunto de repos de tenant a una conexión o tx.
func newTenantRepos(q Querier) *repository.Tenant {
	return &repository.Tenant{
		Restaurant:  NewRestaurantRepository(q),
		Sections:    NewSectionRepository(q),
		Suppliers:   NewSupplierRepository(q),
		Products:    NewProductRepository(q),
		Orders:      NewOrderRepository(q),
		Assignments: NewSectionAssignmentRepository(q),
		SyncStatus:  NewSyncStatusRepository(q),
		Users:       NewUserRepository(q),
	}
}

// WithRestaurant implementa repository.TenantRunner. Cada sentencia dentro de
// fn se confirma por separado (autocommit) sobre la conexión fijada.
func (r *TenantRunner) WithRestaurant(ctx context.Context, restaurantID string, fn func(t *repository.Tenant) error) error {
	if restaurantID == "" {
		return fmt.Errorf("tenant runner: restaurantID vacío")
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("adquirir conexión: %w", err)
	}
	defer func() {
		// Limpiar la variable de sesión antes de devolver la conexión al
		// pool; si no se puede, destruir la conexión en vez de reutilizarla
		// con el tenant anterior pegado.
		if _, rerr := conn.Exec(context.Background(), `RESET app.restaurant_id`); rerr != nil {
			_ = conn.Conn().Close(context.Background())
		}
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, `SELECT set_config('app.restaurant_id', $1, false)`, restaurantID); err != nil {
		return fmt.Errorf("fijar tenant: %w", err)
	}
	return fn(newTenantRepos(conn))
}

// WithRestaurantTx implementa repository.TenantRunner: mismo fijado de tenant
// dentro de una transacción. set_config con is_local=true muere con la tx, así
// que la conexión vuelve limpia al pool tanto en commit como en rollback.
func (r *TenantRunner) WithRestaurantTx(ctx context.Context, restaurantID string, fn func(t *repository.Tenant) error) error {
	if restaurantID == "" {
		return fmt.Errorf("tenant runner: restaurantID vacío")
	}
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT set_config('app.restaurant_id', $1, true)`, restaurantID); err != nil {
		return fmt.Errorf("fijar tenant: %w", err)
	}
	if err := fn(newTenantRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// WithoutRestaurant implementa repository.TenantRunner: consultas sin
// restricción de tenant, reservadas a autenticar por email y resolver un
// restaurante por cuenta Poster durante la vinculación.
func (r *TenantRunner) WithoutRestaurant(ctx context.Context, fn func(g *repository.Global) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("adquirir conexión: %w", err)
	}
	defer conn.Release()

	return fn(&repository.Global{
		Users:       NewUserRepository(conn),
		Restaurants: NewRestaurantDirectory(conn),
	})
}
