package entity

import "time"

// Product representa un ingrediente del catálogo, perteneciente a una sección.
// PosterIngredientID es la clave de upsert de la reconciliación:
// (restaurante, sección, ingrediente Poster). IsActive en false es borrado suave.
type Product struct {
	ID                 string
	RestaurantID       string
	SectionID          string
	Name               string
	Unit               string // unidad de medida: kg, l, pcs, ...
	Category           string
	PosterIngredientID *int64
	SupplierID         *string // referencia directa opcional al proveedor
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
