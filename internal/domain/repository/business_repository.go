package repository

import "github.com/comandapos/comanda-api/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para Business (DIP).
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	Update(business *entity.Business) error
	UpdateLogoURL(id, logoURL string) error
}
