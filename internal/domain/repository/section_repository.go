package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// SectionRepository define el puerto de persistencia para Section.
// GetByPosterStorageID es la búsqueda por clave de upsert de la reconciliación.
type SectionRepository interface {
	Create(s *entity.Section) error
	GetByID(id string) (*entity.Section, error)
	GetByName(name string) (*entity.Section, error)
	GetByPosterStorageID(posterStorageID int64) (*entity.Section, error)
	List(limit, offset int) ([]*entity.Section, error)
	// ListLinked lista las secciones activas con almacén Poster vinculado
	// (las únicas que participan en la sincronización de ingredientes).
	ListLinked() ([]*entity.Section, error)
	Update(s *entity.Section) error
	Deactivate(id string) error
}
