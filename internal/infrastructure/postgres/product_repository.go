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

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, restaurant_id, section_id, name, unit, category, poster_ingredient_id, supplier_id, is_active, created_at, updated_at`

// ProductRepo implementa ProductRepository (ingredientes) sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un ingrediente nuevo.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO products (id, restaurant_id, section_id, name, unit, category, poster_ingredient_id, supplier_id, is_active, created_at, updated_at)
		VALUES ($1, ` + tenantID + `, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SectionID, p.Name, p.Unit, p.Category, p.PosterIngredientID, p.SupplierID,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID dentro del tenant actual.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByPosterIngredientID busca por la clave de upsert de la reconciliación:
// (sección, ingrediente Poster).
func (r *ProductRepo) GetByPosterIngredientID(sectionID string, posterIngredientID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE section_id = $1 AND poster_ingredient_id = $2 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, sectionID, posterIngredientID))
}

// ListBySection lista ingredientes de una sección.
func (r *ProductRepo) ListBySection(sectionID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE section_id = $1 AND restaurant_id = ` + tenantID + ` ORDER BY name LIMIT $2 OFFSET $3`
	return r.scanMany(query, sectionID, limit, offset)
}

// List lista todos los ingredientes del restaurante.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE restaurant_id = ` + tenantID + ` ORDER BY name LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// Update actualiza un ingrediente existente.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products SET section_id = $2, name = $3, unit = $4, category = $5, poster_ingredient_id = $6, supplier_id = $7, is_active = $8, updated_at = $9
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.SectionID, p.Name, p.Unit, p.Category, p.PosterIngredientID, p.SupplierID, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Deactivate es el borrado suave.
func (r *ProductRepo) Deactivate(id string) error {
	query := `UPDATE products SET is_active = false, updated_at = now()
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.RestaurantID, &p.SectionID, &p.Name, &p.Unit, &p.Category,
		&p.PosterIngredientID, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) scanMany(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.RestaurantID, &p.SectionID, &p.Name, &p.Unit, &p.Category,
			&p.PosterIngredientID, &p.SupplierID, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
