package entity

import "time"

// Tipos de entidad sincronizables con el POS externo.
const (
	SyncEntitySections    = "sections"
	SyncEntityIngredients = "ingredients"
	SyncEntitySuppliers   = "suppliers"
)

// SyncEntityTypes lista los tipos en el orden en que se reconcilian:
// primero secciones (los ingredientes dependen de sus almacenes).
var SyncEntityTypes = []string{SyncEntitySections, SyncEntityIngredients, SyncEntitySuppliers}

// ValidSyncEntity indica si el tipo pertenece al conjunto sincronizable.
func ValidSyncEntity(entityType string) bool {
	switch entityType {
	case SyncEntitySections, SyncEntityIngredients, SyncEntitySuppliers:
		return true
	}
	return false
}

// SyncStatus registra, por restaurante y tipo de entidad, cuándo fue la última
// sincronización exitosa. Se persiste en DB: un reinicio no pierde la
// información de staleness.
type SyncStatus struct {
	RestaurantID string
	EntityType   string
	LastSyncedAt time.Time
}

// NeedsSync deriva si el tipo está "stale" respecto al umbral dado.
func (s *SyncStatus) NeedsSync(staleAfter time.Duration, now time.Time) bool {
	if s == nil || s.LastSyncedAt.IsZero() {
		return true
	}
	return now.Sub(s.LastSyncedAt) > staleAfter
}
