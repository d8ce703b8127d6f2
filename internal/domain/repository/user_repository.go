package repository

import "github.com/zhanikpanik/restaurant-checklist-sub002/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// FindByEmail es deliberadamente global (sin tenant): la autenticación ocurre
// antes de conocer el restaurante, por eso el email es único en todo el sistema.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List(limit, offset int) ([]*entity.User, error)
	Update(u *entity.User) error
}
