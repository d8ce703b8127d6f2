package repository

import (
	"time"

	"github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"
)

// SyncStatusRepository define el puerto para el registro de última
// sincronización por tipo de entidad. Touch se ejecuta incluso cuando la
// sincronización no cambió ninguna fila: un diff vacío exitoso también
// reinicia el staleness.
type SyncStatusRepository interface {
	Get(entityType string) (*entity.SyncStatus, error)
	List() ([]*entity.SyncStatus, error)
	Touch(entityType string, syncedAt time.Time) error
}
