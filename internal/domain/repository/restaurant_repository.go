package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// RestaurantRepository define el puerto de persistencia para Restaurant.
// Get (sin argumentos) devuelve el restaurante del contexto de tenant actual;
// GetByPosterAccount es la resolución global usada durante la vinculación de
// cuentas y vive solo en el conjunto de repos sin tenant.
type RestaurantRepository interface {
	Get() (*entity.Restaurant, error)
	Update(r *entity.Restaurant) error
	Deactivate() error
}

// RestaurantDirectory es la vista global (sin tenant) sobre restaurantes,
// reservada a la vinculación de cuentas.
type RestaurantDirectory interface {
	GetByID(id string) (*entity.Restaurant, error)
	GetByPosterAccount(account string) (*entity.Restaurant, error)
	Create(r *entity.Restaurant) error
	Update(r *entity.Restaurant) error
}
