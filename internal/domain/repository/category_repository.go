package repository

import "github.com/comandapos/comanda-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	ListByBusiness(businessID string, onlyActive bool) ([]*entity.Category, error)
	Update(category *entity.Category) error
	// CountActiveProducts cuenta productos activos asociados a la categoría (guardia de borrado).
	CountActiveProducts(categoryID string) (int, error)
	// SoftDelete marca la categoría como inactiva.
	SoftDelete(id string) error
}
