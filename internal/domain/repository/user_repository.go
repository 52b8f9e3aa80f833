package repository

import "github.com/comandapos/comanda-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	GetByEmailAndBusiness(email, businessID string) (*entity.User, error)
	ListByBusiness(businessID string) ([]*entity.User, error)
	Update(user *entity.User) error
}
