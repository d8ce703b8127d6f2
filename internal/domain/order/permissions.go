package order

import (
	"errors"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
)

// Errores de autorización de transiciones. El handler los traduce a mensajes
// del estilo "te falta la capacidad X en la sección Y".
var (
	ErrSendNotAllowed    = errors.New("se requiere la capacidad de enviar pedidos en la sección")
	ErrReceiveNotAllowed = errors.New("se requiere la capacidad de recibir entregas en la sección")
	ErrCancelNotAllowed  = errors.New("solo admin o manager pueden cancelar pedidos")
)

// Capabilities son las capacidades de un usuario sobre una sección concreta.
type Capabilities struct {
	CanSend    bool
	CanReceive bool
}

// Scope es el alcance de pedidos visibles para un usuario.
type Scope int

const (
	// ScopeAll: todos los pedidos del restaurante.
	ScopeAll Scope = iota
	// ScopeMine: solo los pedidos propios y los de las secciones asignadas.
	ScopeMine
)

// Privileged indica si el rol salta todas las comprobaciones de capacidad.
func Privileged(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleManager
}

// CanTransition decide si un usuario con el rol y las capacidades dadas puede
// llevar un pedido de from a to. Reglas, en orden:
//
//  1. Un estado terminal rechaza cualquier transición, sin importar el rol.
//  2. La transición debe estar en la tabla del ciclo de vida.
//  3. admin y manager pueden todo lo que la tabla permita.
//  4. cancelled es exclusivo de admin/manager.
//  5. sent exige la capacidad de envío en la sección del pedido.
//  6. delivered exige la capacidad de recepción en la sección del pedido.
//
// La edición en el mismo estado (pending → pending) no exige capacidad.
func CanTransition(role string, caps Capabilities, from, to Status) error {
	if !from.CanTransitionTo(to) {
		return ErrInvalidState
	}
	if Privileged(role) {
		return nil
	}
	switch to {
	case StatusCancelled:
		return ErrCancelNotAllowed
	case StatusSent:
		if !caps.CanSend {
			return ErrSendNotAllowed
		}
	case StatusDelivered:
		if !caps.CanReceive {
			return ErrReceiveNotAllowed
		}
	}
	return nil
}

// VisibleScope decide qué pedidos ve el usuario. Roles privilegiados ven todo.
// Un usuario no privilegiado con al menos una capacidad de envío también ve
// todo (debe poder actuar sobre los pedidos entrantes); sin ninguna capacidad
// en ninguna sección, ve solo lo suyo.
func VisibleScope(role string, assignments []entity.SectionAssignment) Scope {
	if Privileged(role) {
		return ScopeAll
	}
	for _, a := range assignments {
		if a.CanSendOrders {
			return ScopeAll
		}
	}
	return ScopeMine
}

// CapabilitiesFor extrae las capacidades del usuario sobre la sección cuyo
// nombre coincide con el departamento del pedido. Sin asignación: sin
// capacidades.
func CapabilitiesFor(assignments []entity.SectionAssignment, sectionName string) Capabilities {
	var caps Capabilities
	for _, a := range assignments {
		if a.SectionName == sectionName {
			caps.CanSend = caps.CanSend || a.CanSendOrders
			caps.CanReceive = caps.CanReceive || a.CanReceive
		}
	}
	return caps
}
