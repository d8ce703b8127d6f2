package dto

import "time"

// LinkRestaurantRequest vincula (o revincula) una cuenta Poster como tenant.
// El token se valida contra el POS antes de persistir.
type LinkRestaurantRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	PosterAccount string `json:"poster_account" validate:"required,min=1,max=100"`
	PosterToken   string `json:"poster_token" validate:"required"`
}

// UpdateRestaurantRequest cambio parcial del restaurante actual.
type UpdateRestaurantRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=1,max=200"`
	KitchenStorageID *int64  `json:"kitchen_storage_id"`
	BarStorageID     *int64  `json:"bar_storage_id"`
}

// RestaurantResponse salida de un restaurante. El token Poster nunca se expone.
type RestaurantResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	PosterAccount    string    `json:"poster_account"`
	KitchenStorageID *int64    `json:"kitchen_storage_id,omitempty"`
	BarStorageID     *int64    `json:"bar_storage_id,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
