package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/domain/entity"
)

// OrderFilter filtros de listado de comandas.
type OrderFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// SalesSummary agregado de ventas de un rango (las canceladas se excluyen en el adaptador).
type SalesSummary struct {
	Total      decimal.Decimal
	OrderCount int
}

// OrderRepository define el puerto de persistencia para comandas y sus líneas.
// Las operaciones de varias filas (crear, agregar líneas) se usan dentro de una
// transacción vía el TxRunner de la capa de aplicación.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	// GetForUpdate obtiene la comanda y bloquea su fila (SELECT FOR UPDATE); usar
	// dentro de una tx. Estado y total leídos fuera de la tx pueden estar viejos.
	GetForUpdate(id string) (*entity.Order, error)
	ListByBusiness(businessID string, f OrderFilter) ([]*entity.Order, error)
	// NextDailyNumber devuelve el siguiente consecutivo del día para el negocio.
	// Debe invocarse dentro de la transacción que inserta la comanda.
	NextDailyNumber(businessID string, day time.Time) (int, error)
	UpdateStatus(id, status string) error
	// UpdateTotal fija el nuevo total y estampa el último modificador. El total debe
	// calcularse sobre la fila bloqueada con GetForUpdate, en la misma tx.
	UpdateTotal(id string, total decimal.Decimal, modifiedBy string) error
	CreateItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
	// SalesSummary agrega total y conteo de comandas no canceladas del rango.
	SalesSummary(businessID string, from, to time.Time) (*SalesSummary, error)
}
