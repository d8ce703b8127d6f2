package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"

// OrderFilter filtra el listado de pedidos. Departments y CreatedByUserID
// materializan el alcance "mis pedidos": pedidos creados por el usuario o
// cuyos departamentos coinciden con sus secciones asignadas.
type OrderFilter struct {
	Statuses        []order.Status
	Departments     []string
	CreatedByUserID string
	Limit           int
	Offset          int
}

// OrderRepository define el puerto de persistencia para Order. Las
// implementaciones nunca deben saltarse el filtrado por restaurante: un pedido
// de otro tenant es indistinguible de "no existe".
type OrderRepository interface {
	Create(o *order.Order) error
	GetByID(id string) (*order.Order, error)
	List(f OrderFilter) ([]*order.Order, error)
	// Update escribe estado, payload y timestamps de una sola fila.
	Update(o *order.Order) error
	// UpdateBatch escribe cada pedido de forma independiente: el fallo de uno
	// no revierte a los demás. Devuelve cuántos se escribieron.
	UpdateBatch(orders []*order.Order) (int, error)
}
