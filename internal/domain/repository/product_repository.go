package repository

import "github.com/comandapos/comanda-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	ListByBusiness(businessID string, onlyActive bool, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// SoftDelete marca el producto como inactivo; las líneas históricas lo siguen referenciando.
	SoftDelete(id string) error
}
