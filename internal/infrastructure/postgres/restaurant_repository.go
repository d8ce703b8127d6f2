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

var (
	_ repository.RestaurantRepository = (*RestaurantRepo)(nil)
	_ repository.RestaurantDirectory  = (*RestaurantDirectoryRepo)(nil)
)

const restaurantColumns = `id, name, poster_account, poster_token, kitchen_storage_id, bar_storage_id, is_active, created_at, updated_at`

// RestaurantRepo es la vista de tenant sobre la tabla restaurants: solo ve la
// fila del restaurante fijado en la conexión.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador de tenant.
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Get devuelve el restaurante del contexto actual.
func (r *RestaurantRepo) Get() (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = ` + tenantID
	return scanRestaurant(r.q.QueryRow(context.Background(), query))
}

// Update actualiza nombre, credencial y almacenes por defecto.
func (r *RestaurantRepo) Update(rest *entity.Restaurant) error {
	query := `
		UPDATE restaurants SET name = $1, poster_token = $2, kitchen_storage_id = $3, bar_storage_id = $4, updated_at = $5
		WHERE id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query,
		rest.Name, rest.PosterToken, rest.KitchenStorageID, rest.BarStorageID, rest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

// Deactivate desactiva el restaurante actual. Nunca hay borrado físico.
func (r *RestaurantRepo) Deactivate() error {
	query := `UPDATE restaurants SET is_active = false, updated_at = now() WHERE id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query)
	if err != nil {
		return fmt.Errorf("deactivate restaurant: %w", err)
	}
	return nil
}

// RestaurantDirectoryRepo es la vista global sobre restaurantes, reservada a
// la vinculación de cuentas Poster.
type RestaurantDirectoryRepo struct {
	q Querier
}

// NewRestaurantDirectory construye el adaptador global.
func NewRestaurantDirectory(q Querier) *RestaurantDirectoryRepo {
	return &RestaurantDirectoryRepo{q: q}
}

// GetByID obtiene un restaurante por ID (sin restricción de tenant).
func (r *RestaurantDirectoryRepo) GetByID(id string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(r.q.QueryRow(context.Background(), query, id))
}

// GetByPosterAccount resuelve qué restaurante posee una cuenta Poster.
func (r *RestaurantDirectoryRepo) GetByPosterAccount(account string) (*entity.Restaurant, error) {
	query := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE poster_account = $1`
	return scanRestaurant(r.q.QueryRow(context.Background(), query, account))
}

// Create persiste un restaurante nuevo (vinculación de cuenta).
func (r *RestaurantDirectoryRepo) Create(rest *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, poster_account, poster_token, kitchen_storage_id, bar_storage_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		rest.ID, rest.Name, rest.PosterAccount, rest.PosterToken,
		rest.KitchenStorageID, rest.BarStorageID, rest.IsActive, rest.CreatedAt, rest.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// Update refresca credenciales al re-vincular la cuenta.
func (r *RestaurantDirectoryRepo) Update(rest *entity.Restaurant) error {
	query := `
		UPDATE restaurants SET name = $2, poster_token = $3, is_active = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rest.ID, rest.Name, rest.PosterToken, rest.IsActive, rest.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update restaurant: %w", err)
	}
	return nil
}

func scanRestaurant(row pgx.Row) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := row.Scan(&rest.ID, &rest.Name, &rest.PosterAccount, &rest.PosterToken,
		&rest.KitchenStorageID, &rest.BarStorageID, &rest.IsActive, &rest.CreatedAt, &rest.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}
