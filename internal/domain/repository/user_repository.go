package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	// GetByID devuelve el usuario o nil si no existe.
	GetByID(id string) (*entity.User, error)
	// FindByEmail devuelve el usuario o nil si no existe.
	FindByEmail(email string) (*entity.User, error)
}
