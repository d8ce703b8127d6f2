package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// CanTransition
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_PrivilegiadosPuedenTodo(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleManager} {
		// Sin ninguna fila de asignación: los privilegiados no las necesitan.
		caps := order.Capabilities{}
		assert.NoError(t, order.CanTransition(role, caps, order.StatusPending, order.StatusSent), role)
		assert.NoError(t, order.CanTransition(role, caps, order.StatusSent, order.StatusDelivered), role)
		assert.NoError(t, order.CanTransition(role, caps, order.StatusPending, order.StatusCancelled), role)
	}
}

// Propiedad: un staff sin asignación para la sección es denegado al enviar; el
// mismo staff con "puede enviar" en esa sección es permitido.
func TestCanTransition_EnvioExigeCapacidad(t *testing.T) {
	err := order.CanTransition(entity.RoleStaff, order.Capabilities{}, order.StatusPending, order.StatusSent)
	assert.ErrorIs(t, err, order.ErrSendNotAllowed)

	err = order.CanTransition(entity.RoleStaff, order.Capabilities{CanSend: true}, order.StatusPending, order.StatusSent)
	assert.NoError(t, err)
}

func TestCanTransition_RecepcionExigeCapacidad(t *testing.T) {
	err := order.CanTransition(entity.RoleDelivery, order.Capabilities{CanSend: true}, order.StatusSent, order.StatusDelivered)
	assert.ErrorIs(t, err, order.ErrReceiveNotAllowed, "enviar no implica recibir")

	err = order.CanTransition(entity.RoleDelivery, order.Capabilities{CanReceive: true}, order.StatusSent, order.StatusDelivered)
	assert.NoError(t, err)
}

func TestCanTransition_CancelarSoloPrivilegiados(t *testing.T) {
	// Ni siquiera con ambas capacidades: cancelar es de admin/manager.
	caps := order.Capabilities{CanSend: true, CanReceive: true}
	err := order.CanTransition(entity.RoleStaff, caps, order.StatusPending, order.StatusCancelled)
	assert.ErrorIs(t, err, order.ErrCancelNotAllowed)
}

// Invariante: un estado terminal rechaza cualquier transición, incluso para un
// admin.
func TestCanTransition_TerminalRechazaInclusoAdmin(t *testing.T) {
	for _, from := range []order.Status{order.StatusDelivered, order.StatusCancelled} {
		for _, to := range []order.Status{order.StatusPending, order.StatusSent, order.StatusDelivered, order.StatusCancelled} {
			err := order.CanTransition(entity.RoleAdmin, order.Capabilities{}, from, to)
			assert.ErrorIs(t, err, order.ErrInvalidState, "%s → %s", from, to)
		}
	}
}

func TestCanTransition_EditarPendingSinCapacidad(t *testing.T) {
	// Guardar ediciones de cantidades sin avanzar estado no exige capacidad.
	err := order.CanTransition(entity.RoleStaff, order.Capabilities{}, order.StatusPending, order.StatusPending)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// VisibleScope
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleScope(t *testing.T) {
	sinCaps := []entity.SectionAssignment{{SectionID: "s1"}}
	conEnvio := []entity.SectionAssignment{{SectionID: "s1", CanSendOrders: true}}
	soloRecibe := []entity.SectionAssignment{{SectionID: "s1", CanReceive: true}}

	assert.Equal(t, order.ScopeAll, order.VisibleScope(entity.RoleAdmin, nil))
	assert.Equal(t, order.ScopeAll, order.VisibleScope(entity.RoleManager, nil))
	assert.Equal(t, order.ScopeAll, order.VisibleScope(entity.RoleStaff, conEnvio),
		"con capacidad de envío ve todos los pedidos entrantes")
	assert.Equal(t, order.ScopeMine, order.VisibleScope(entity.RoleStaff, sinCaps))
	assert.Equal(t, order.ScopeMine, order.VisibleScope(entity.RoleStaff, nil))
	assert.Equal(t, order.ScopeMine, order.VisibleScope(entity.RoleDelivery, soloRecibe),
		"recibir no amplía la visibilidad")
}

func TestCapabilitiesFor_AcumulaPorSeccion(t *testing.T) {
	assignments := []entity.SectionAssignment{
		{SectionName: "Cocina", CanSendOrders: true},
		{SectionName: "Cocina", CanReceive: true},
		{SectionName: "Barra", CanReceive: true},
	}
	caps := order.CapabilitiesFor(assignments, "Cocina")
	assert.True(t, caps.CanSend)
	assert.True(t, caps.CanReceive)

	caps = order.CapabilitiesFor(assignments, "Barra")
	assert.False(t, caps.CanSend)
	assert.True(t, caps.CanReceive)

	caps = order.CapabilitiesFor(assignments, "Bodega")
	assert.False(t, caps.CanSend)
	assert.False(t, caps.CanReceive)
}
