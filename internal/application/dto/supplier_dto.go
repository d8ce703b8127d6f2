package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name             string `json:"name" validate:"required,min=1,max=200"`
	Phone            string `json:"phone" validate:"omitempty,max=50"`
	PosterSupplierID *int64 `json:"poster_supplier_id"`
}

// UpdateSupplierRequest cambio parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone *string `json:"phone" validate:"omitempty,max=50"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Phone            string    `json:"phone,omitempty"`
	PosterSupplierID *int64    `json:"poster_supplier_id,omitempty"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SupplierListResponse listado paginado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
