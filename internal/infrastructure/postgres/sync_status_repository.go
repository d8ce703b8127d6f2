package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/repository"
)

var _ repository.SyncStatusRepository = (*SyncStatusRepo)(nil)

// SyncStatusRepo implementa SyncStatusRepository sobre PostgreSQL. El registro
// vive en DB: un reinicio del proceso no pierde el staleness.
type SyncStatusRepo struct {
	q Querier
}

// NewSyncStatusRepository construye el adaptador. Pasar pool, conexión o tx (Querier).
func NewSyncStatusRepository(q Querier) *SyncStatusRepo {
	return &SyncStatusRepo{q: q}
}

// Get obtiene el registro de un tipo de entidad; (nil, nil) si nunca se sincronizó.
func (r *SyncStatusRepo) Get(entityType string) (*entity.SyncStatus, error) {
	query := `SELECT restaurant_id, entity_type, last_synced_at FROM sync_status
		WHERE entity_type = $1 AND restaurant_id = ` + tenantID
	var s entity.SyncStatus
	err := r.q.QueryRow(context.Background(), query, entityType).Scan(&s.RestaurantID, &s.EntityType, &s.LastSyncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync_status: %w", err)
	}
	return &s, nil
}

// List lista los registros del restaurante.
func (r *SyncStatusRepo) List() ([]*entity.SyncStatus, error) {
	query := `SELECT restaurant_id, entity_type, last_synced_at FROM sync_status
		WHERE restaurant_id = ` + tenantID
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list sync_status: %w", err)
	}
	defer rows.Close()
	var list []*entity.SyncStatus
	for rows.Next() {
		var s entity.SyncStatus
		if err := rows.Scan(&s.RestaurantID, &s.EntityType, &s.LastSyncedAt); err != nil {
			return nil, fmt.Errorf("scan sync_status: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Touch registra la marca de tiempo de la última sincronización del tipo,
// incluso si la corrida no cambió ninguna fila.
func (r *SyncStatusRepo) Touch(entityType string, syncedAt time.Time) error {
	query := `
		INSERT INTO sync_status (restaurant_id, entity_type, last_synced_at)
		VALUES (` + tenantID + `, $1, $2)
		ON CONFLICT (restaurant_id, entity_type) DO UPDATE SET last_synced_at = EXCLUDED.last_synced_at`
	_, err := r.q.Exec(context.Background(), query, entityType, syncedAt)
	if err != nil {
		return fmt.Errorf("touch sync_status: %w", err)
	}
	return nil
}
