package entity

import "time"

// Restaurant representa un restaurante (tenant): la unidad de aislamiento de datos.
// PosterToken es la credencial bearer del POS externo (Poster); PosterAccount es el
// nombre de cuenta con el que se resuelve el restaurante durante la vinculación.
// Nunca se borra físicamente: IsActive en false lo desactiva.
type Restaurant struct {
	ID               string
	Name             string
	PosterAccount    string // nombre de cuenta en Poster (subdominio de la API)
	PosterToken      string // credencial opaca por restaurante
	KitchenStorageID *int64 // almacén Poster por defecto para cocina
	BarStorageID     *int64 // almacén Poster por defecto para barra
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
