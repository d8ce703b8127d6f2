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

var _ repository.SectionRepository = (*SectionRepo)(nil)

const sectionColumns = `id, restaurant_id, name, emoji, poster_storage_id, is_active, created_at, updated_at`

// SectionRepo implementa SectionRepository sobre PostgreSQL.
type SectionRepo struct {
	q Querier
}

// NewSectionRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewSectionRepository(q Querier) *SectionRepo {
	return &SectionRepo{q: q}
}

// Create persiste una sección nueva.
func (r *SectionRepo) Create(s *entity.Section) error {
	query := `
		INSERT INTO sections (id, restaurant_id, name, emoji, poster_storage_id, is_active, created_at, updated_at)
		VALUES ($1, ` + tenantID + `, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Emoji, s.PosterStorageID, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert section: %w", err)
	}
	return nil
}

// GetByID obtiene una sección por ID dentro del tenant actual.
func (r *SectionRepo) GetByID(id string) (*entity.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByName obtiene una sección por nombre exacto (los pedidos referencian la
// sección por su nombre de departamento).
func (r *SectionRepo) GetByName(name string) (*entity.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE name = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, name))
}

// GetByPosterStorageID busca por la clave de upsert de la reconciliación.
func (r *SectionRepo) GetByPosterStorageID(posterStorageID int64) (*entity.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE poster_storage_id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, posterStorageID))
}

// List lista secciones del restaurante.
func (r *SectionRepo) List(limit, offset int) ([]*entity.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections
		WHERE restaurant_id = ` + tenantID + ` ORDER BY created_at LIMIT $1 OFFSET $2`
	return r.scanMany(query, limit, offset)
}

// ListLinked lista las secciones activas con almacén Poster vinculado.
func (r *SectionRepo) ListLinked() ([]*entity.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections
		WHERE restaurant_id = ` + tenantID + ` AND is_active AND poster_storage_id IS NOT NULL
		ORDER BY created_at`
	return r.scanMany(query)
}

// Update actualiza nombre, icono, vínculo Poster y flag de actividad.
func (r *SectionRepo) Update(s *entity.Section) error {
	query := `
		UPDATE sections SET name = $2, emoji = $3, poster_storage_id = $4, is_active = $5, updated_at = $6
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Emoji, s.PosterStorageID, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update section: %w", err)
	}
	return nil
}

// Deactivate es el borrado suave; la reconciliación nunca borra secciones.
func (r *SectionRepo) Deactivate(id string) error {
	query := `UPDATE sections SET is_active = false, updated_at = now()
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate section: %w", err)
	}
	return nil
}

func (r *SectionRepo) scanOne(row pgx.Row) (*entity.Section, error) {
	var s entity.Section
	err := row.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Emoji, &s.PosterStorageID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &s, nil
}

func (r *SectionRepo) scanMany(query string, args ...any) ([]*entity.Section, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()
	var list []*entity.Section
	for rows.Next() {
		var s entity.Section
		if err := rows.Scan(&s.ID, &s.RestaurantID, &s.Name, &s.Emoji, &s.PosterStorageID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
