package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(s *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	GetByPosterSupplierID(posterSupplierID int64) (*entity.Supplier, error)
	// GetByName empareja por nombre exacto: respaldo de la reconciliación
	// cuando el proveedor externo no trae identificador.
	GetByName(name string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Deactivate(id string) error
}
