package entity

import "time"

// Roles globales de usuario. Admin y manager son roles privilegiados: pueden
// cualquier transición de pedido y ven todos los pedidos del restaurante.
// Staff y delivery dependen de capacidades por sección (SectionAssignment).
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleStaff    = "staff"
	RoleDelivery = "delivery"
)

// ValidRole indica si el rol pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleStaff, RoleDelivery:
		return true
	}
	return false
}

// User representa un usuario de la plataforma. El email es único en todo el
// sistema (no solo dentro del restaurante) porque la autenticación ocurre
// antes de conocer el contexto de tenant.
type User struct {
	ID           string
	RestaurantID string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | manager | staff | delivery
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
