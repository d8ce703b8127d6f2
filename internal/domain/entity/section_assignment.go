package entity

import "time"

// SectionAssignment vincula un usuario con una sección mediante dos capacidades
// independientes: enviar pedidos y recibir entregas. Un usuario puede tener
// varias asignaciones (varias secciones). Los roles privilegiados (admin,
// manager) tienen implícitamente todas las capacidades y no necesitan filas.
type SectionAssignment struct {
	UserID        string
	SectionID     string
	SectionName   string // desnormalizado en lecturas para filtrar pedidos por departamento
	CanSendOrders bool
	CanReceive    bool
	CreatedAt     time.Time
}
