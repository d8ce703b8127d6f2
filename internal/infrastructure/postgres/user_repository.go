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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, restaurant_id, email, password_hash, name, role, is_active, created_at, updated_at`

// UserRepo implementa UserRepository sobre PostgreSQL. FindByEmail es la única
// consulta pensada para el ámbito global (la autenticación ocurre antes de
// conocer el tenant); el resto exige un contexto de restaurante fijado.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario del restaurante actual.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (id, restaurant_id, email, password_hash, name, role, is_active, created_at, updated_at)
		VALUES ($1, ` + tenantID + `, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// El email es único en todo el sistema, no solo en el restaurante.
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario del restaurante actual.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindByEmail busca en todo el sistema, sin restricción de tenant.
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// List lista usuarios del restaurante actual.
func (r *UserRepo) List(limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE restaurant_id = ` + tenantID + ` ORDER BY created_at LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.RestaurantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update actualiza nombre, rol y flag de actividad del usuario.
func (r *UserRepo) Update(u *entity.User) error {
	query := `
		UPDATE users SET name = $2, role = $3, is_active = $4, updated_at = $5
		WHERE id = $1 AND restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Name, u.Role, u.IsActive, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.RestaurantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
