package dto

import "time"

// SyncResultResponse resultado de reconciliar un tipo de entidad. Error no
// vacío marca un fallo parcial: los demás tipos se reconcilian igualmente.
type SyncResultResponse struct {
	EntityType string   `json:"entity_type"`
	Created    int      `json:"created"`
	Updated    int      `json:"updated"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// SyncSummaryResponse resumen de una pasada completa de reconciliación.
type SyncSummaryResponse struct {
	Results []SyncResultResponse `json:"results"`
}

// SyncStatusResponse estado de frescura de un tipo de entidad.
type SyncStatusResponse struct {
	EntityType   string     `json:"entity_type"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	Stale        bool       `json:"stale"`
}
