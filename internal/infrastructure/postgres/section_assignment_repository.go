package postgres

import (
	"context"
	"fmt"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

var _ repository.SectionAssignmentRepository = (*SectionAssignmentRepo)(nil)

// SectionAssignmentRepo implementa SectionAssignmentRepository sobre
// PostgreSQL. Las filas no llevan restaurant_id propio: el aislamiento viene
// del join obligatorio con sections, que sí está bajo el predicado de tenant.
type SectionAssignmentRepo struct {
	q Querier
}

// NewSectionAssignmentRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewSectionAssignmentRepository(q Querier) *SectionAssignmentRepo {
	return &SectionAssignmentRepo{q: q}
}

// Upsert crea o actualiza la concesión (usuario, sección).
func (r *SectionAssignmentRepo) Upsert(a *entity.SectionAssignment) error {
	query := `
		INSERT INTO section_assignments (user_id, section_id, can_send_orders, can_receive, created_at)
		SELECT $1, s.id, $3, $4, $5 FROM sections s
		WHERE s.id = $2 AND s.restaurant_id = ` + tenantID + `
		ON CONFLICT (user_id, section_id)
		DO UPDATE SET can_send_orders = EXCLUDED.can_send_orders, can_receive = EXCLUDED.can_receive`
	cmd, err := r.q.Exec(context.Background(), query,
		a.UserID, a.SectionID, a.CanSendOrders, a.CanReceive, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert section_assignment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		// La sección no existe en este restaurante: no se concede nada.
		return fmt.Errorf("upsert section_assignment: sección %s fuera del tenant", a.SectionID)
	}
	return nil
}

// ListByUser lista las concesiones de un usuario con el nombre de sección
// desnormalizado (para filtrar pedidos por departamento).
func (r *SectionAssignmentRepo) ListByUser(userID string) ([]entity.SectionAssignment, error) {
	query := `
		SELECT a.user_id, a.section_id, s.name, a.can_send_orders, a.can_receive, a.created_at
		FROM section_assignments a
		JOIN sections s ON s.id = a.section_id AND s.restaurant_id = ` + tenantID + `
		WHERE a.user_id = $1`
	return r.scanMany(query, userID)
}

// ListBySection lista las concesiones sobre una sección.
func (r *SectionAssignmentRepo) ListBySection(sectionID string) ([]entity.SectionAssignment, error) {
	query := `
		SELECT a.user_id, a.section_id, s.name, a.can_send_orders, a.can_receive, a.created_at
		FROM section_assignments a
		JOIN sections s ON s.id = a.section_id AND s.restaurant_id = ` + tenantID + `
		WHERE a.section_id = $1`
	return r.scanMany(query, sectionID)
}

// Delete revoca la concesión (usuario, sección).
func (r *SectionAssignmentRepo) Delete(userID, sectionID string) error {
	query := `
		DELETE FROM section_assignments a
		USING sections s
		WHERE a.user_id = $1 AND a.section_id = $2
		  AND s.id = a.section_id AND s.restaurant_id = ` + tenantID
	_, err := r.q.Exec(context.Background(), query, userID, sectionID)
	if err != nil {
		return fmt.Errorf("delete section_assignment: %w", err)
	}
	return nil
}

func (r *SectionAssignmentRepo) scanMany(query string, args ...any) ([]entity.SectionAssignment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list section_assignments: %w", err)
	}
	defer rows.Close()
	var list []entity.SectionAssignment
	for rows.Next() {
		var a entity.SectionAssignment
		if err := rows.Scan(&a.UserID, &a.SectionID, &a.SectionName, &a.CanSendOrders, &a.CanReceive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section_assignment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
