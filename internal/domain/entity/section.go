package entity

import "time"

// Section representa un departamento o ubicación de almacenamiento dentro de un
// restaurante (ej. "Cocina", "Barra"). PosterStorageID es el identificador del
// almacén en el POS externo; es nullable porque una sección puede existir solo
// localmente. Invariante: a lo sumo una sección por (restaurante, almacén Poster) —
// esa pareja es la clave de upsert de la reconciliación.
type Section struct {
	ID              string
	RestaurantID    string
	Name            string
	Emoji           string // icono mostrado en la UI
	PosterStorageID *int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
