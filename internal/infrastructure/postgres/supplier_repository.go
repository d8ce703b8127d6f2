package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, restaurant_id, name, phone, poster_supplier_id, is_active, created_at, updated_at`

// SupplierRepo implementa SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un proveedor nuevo.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, restaurant_id, name, phone, poster_supplier_id, is_active, created_at, updated_at)
		VALUES ($1, ` + tenantID + `, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Phone, s.PosterSupplierID, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID dentro del tenant actual.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPosterSupplierID busca por la clave de upsert de la reconciliación.
func (r *SupplierRepo) GetByPosterSupplierID(posterSupplierID int64) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE poster_supplier_id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, posterSupplierID))
}

// GetByName empareja por nombre exacto (respaldo cuando el proveedor externo
// no trae identificador).
func (r *SupplierRepo) GetByName(name string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE name = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// List lista proveedores del restaurante.
func (r *SupplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers
		WHERE restaurant_id = ` + tenantID + ` ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Phone, &s.PosterSupplierID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Update actualiza un proveedor existente.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, phone = $3, poster_supplier_id = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Phone, s.PosterSupplierID, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Deactivate es el borrado suave.
func (r *SupplierRepo) Deactivate(id string) error {
	query := `UPDATE suppliers SET is_active = false, updated_at = now()
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate supplier: %w", err)
	}
	return nil
}

func (r *SupplierRepo) scanOne(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Phone, &s.PosterSupplierID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}
