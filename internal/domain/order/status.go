package order

// Status es el estado del ciclo de vida de un pedido.
//
// Camino feliz: pending → sent → delivered. Aborto: pending → cancelled.
// delivered y cancelled son terminales: ningún rol puede sacar un pedido de
// ellos. Una "transición" pending → pending es la edición de cantidades sin
// avanzar el estado.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions es la tabla única de transiciones permitidas. Mantener todas las
// reglas aquí facilita auditarlas.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPending, StatusSent, StatusCancelled},
	StatusSent:      {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid indica si el valor pertenece al conjunto cerrado de estados.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal indica si el estado no tiene transiciones salientes.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo indica si la transición s → to está en la tabla.
func (s Status) CanTransitionTo(to Status) bool {
	for _, t := range transitions[s] {
		if t == to {
			return true
		}
	}
	return false
}
