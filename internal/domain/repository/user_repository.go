package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmailAndClient(email, clientID string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
