package dto

import "time"

// CreateProductRequest entrada para crear un producto (ingrediente) del catálogo.
type CreateProductRequest struct {
	SectionID          string  `json:"section_id" validate:"required,uuid"`
	Name               string  `json:"name" validate:"required,min=1,max=200"`
	Unit               string  `json:"unit" validate:"required,min=1,max=20"`
	Category           string  `json:"category" validate:"omitempty,max=200"`
	PosterIngredientID *int64  `json:"poster_ingredient_id"`
	SupplierID         *string `json:"supplier_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest cambio parcial de un producto.
type UpdateProductRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Unit       *string `json:"unit" validate:"omitempty,min=1,max=20"`
	Category   *string `json:"category" validate:"omitempty,max=200"`
	SupplierID *string `json:"supplier_id" validate:"omitempty,uuid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string    `json:"id"`
	SectionID          string    `json:"section_id"`
	Name               string    `json:"name"`
	Unit               string    `json:"unit"`
	Category           string    `json:"category,omitempty"`
	PosterIngredientID *int64    `json:"poster_ingredient_id,omitempty"`
	SupplierID         *string   `json:"supplier_id,omitempty"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
