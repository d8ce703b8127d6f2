package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/order"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementa OrderRepository sobre PostgreSQL. El payload (ítems
// incluidos) se persiste como un solo blob JSONB: la lista de un pedido se lee
// y escribe atómicamente sin join.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido nuevo.
func (r *OrderRepo) Create(o *order.Order) error {
	payload, err := json.Marshal(o.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	query := `
		INSERT INTO orders (id, restaurant_id, status, payload, created_by_role, created_by_user_id, created_at, updated_at, delivered_at)
		VALUES ($1, ` + tenantID + `, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		o.ID, string(o.Status), payload, o.CreatedByRole, o.CreatedByUserID,
		o.CreatedAt, o.UpdatedAt, o.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID dentro del tenant actual. Un pedido de otro
// restaurante es indistinguible de inexistente: (nil, nil).
func (r *OrderRepo) GetByID(id string) (*order.Order, error) {
	query := `
		SELECT id, restaurant_id, status, payload, created_by_role, created_by_user_id, created_at, updated_at, delivered_at
		FROM orders WHERE id = $1 AND restaurant_id = ` + tenantID
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// List lista pedidos según el filtro, más recientes primero.
func (r *OrderRepo) List(f repository.OrderFilter) ([]*order.Order, error) {
	query := `
		SELECT id, restaurant_id, status, payload, created_by_role, created_by_user_id, created_at, updated_at, delivered_at
		FROM orders WHERE restaurant_id = ` + tenantID
	args := []any{}
	n := 0

	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		n++
		query += fmt.Sprintf(" AND status = ANY($%d)", n)
		args = append(args, statuses)
	}
	// Alcance "mis pedidos": creados por el usuario o de sus departamentos.
	if f.CreatedByUserID != "" || len(f.Departments) > 0 {
		query += fmt.Sprintf(" AND (created_by_user_id = $%d OR payload->>'department' = ANY($%d))", n+1, n+2)
		args = append(args, f.CreatedByUserID, f.Departments)
		n += 2
	}

	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*order.Order
	for rows.Next() {
		o, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// Update escribe estado, payload y timestamps de una sola fila.
func (r *OrderRepo) Update(o *order.Order) error {
	payload, err := json.Marshal(o.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	query := `
		UPDATE orders SET status = $2, payload = $3, updated_at = $4, delivered_at = $5
		WHERE id = $1 AND restaurant_id = ` + tenantID
	cmd, err := r.q.Exec(context.Background(), query,
		o.ID, string(o.Status), payload, o.UpdatedAt, o.DeliveredAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update order %s: sin filas afectadas", o.ID)
	}
	return nil
}

// UpdateBatch escribe cada pedido por separado (autocommit por sentencia): el
// fallo de una fila no revierte a las demás. Devuelve cuántas se escribieron y
// el primer error encontrado, si lo hubo.
func (r *OrderRepo) UpdateBatch(orders []*order.Order) (int, error) {
	updated := 0
	var firstErr error
	for _, o := range orders {
		if err := r.Update(o); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		updated++
	}
	return updated, firstErr
}

func (r *OrderRepo) scanOne(row pgx.Row) (*order.Order, error) {
	o, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) scanRow(row pgx.Row) (*order.Order, error) {
	var o order.Order
	var status string
	var payload []byte
	if err := row.Scan(&o.ID, &o.RestaurantID, &status, &payload,
		&o.CreatedByRole, &o.CreatedByUserID, &o.CreatedAt, &o.UpdatedAt, &o.DeliveredAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}
	o.Status = order.Status(status)
	if err := json.Unmarshal(payload, &o.Payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return &o, nil
}
