package entity

import "time"

// Supplier representa un proveedor del restaurante. PosterSupplierID es la clave
// de upsert de la reconciliación cuando está presente; si no, se empareja por
// nombre exacto.
type Supplier struct {
	ID               string
	RestaurantID     string
	Name             string
	Phone            string
	PosterSupplierID *int64
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
