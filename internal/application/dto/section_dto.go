package dto

import "time"

// CreateSectionRequest entrada para crear una sección.
type CreateSectionRequest struct {
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Emoji           string `json:"emoji" validate:"omitempty,max=16"`
	PosterStorageID *int64 `json:"poster_storage_id"`
}

// UpdateSectionRequest cambio parcial de una sección.
type UpdateSectionRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=1,max=200"`
	Emoji           *string `json:"emoji" validate:"omitempty,max=16"`
	PosterStorageID *int64  `json:"poster_storage_id"`
}

// SectionResponse salida de una sección.
type SectionResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Emoji           string    `json:"emoji,omitempty"`
	PosterStorageID *int64    `json:"poster_storage_id,omitempty"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SectionListResponse listado paginado de secciones.
type SectionListResponse struct {
	Items []SectionResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
