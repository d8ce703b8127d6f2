package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// SectionAssignmentRepository define el puerto para las capacidades
// (usuario, sección). Upsert: una pareja (usuario, sección) tiene a lo sumo
// una fila; repetir la concesión actualiza los flags.
type SectionAssignmentRepository interface {
	Upsert(a *entity.SectionAssignment) error
	ListByUser(userID string) ([]entity.SectionAssignment, error)
	ListBySection(sectionID string) ([]entity.SectionAssignment, error)
	Delete(userID, sectionID string) error
}
