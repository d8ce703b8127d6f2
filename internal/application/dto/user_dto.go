package dto

import "time"

// RegisterRequest entrada para registro de usuarios (solo admin): password en
// texto, se hashea en el use case.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin manager staff delivery"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// AssignSectionRequest concede (o actualiza) capacidades de un usuario sobre
// una sección. Repetir la concesión sobreescribe los flags.
type AssignSectionRequest struct {
	SectionID     string `json:"section_id" validate:"required,uuid"`
	CanSendOrders bool   `json:"can_send_orders"`
	CanReceive    bool   `json:"can_receive"`
}

// AssignmentResponse salida de una asignación usuario-sección.
type AssignmentResponse struct {
	UserID        string    `json:"user_id"`
	SectionID     string    `json:"section_id"`
	SectionName   string    `json:"section_name"`
	CanSendOrders bool      `json:"can_send_orders"`
	CanReceive    bool      `json:"can_receive"`
	CreatedAt     time.Time `json:"created_at"`
}
