package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (ingrediente).
// La clave de upsert de la reconciliación es (sección, ingrediente Poster).
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByPosterIngredientID(sectionID string, posterIngredientID int64) (*entity.Product, error)
	ListBySection(sectionID string, limit, offset int) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(p *entity.Product) error
	Deactivate(id string) error
}
