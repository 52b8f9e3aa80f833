package repository

import "github.com/comandapos/comanda-api/internal/domain/entity"

// TableRepository define el puerto de persistencia para mesas / slots de atención.
type TableRepository interface {
	Create(table *entity.Table) error
	GetByID(id string) (*entity.Table, error)
	ListByBusiness(businessID string, onlyActive bool) ([]*entity.Table, error)
	Update(table *entity.Table) error
	SoftDelete(id string) error
}
