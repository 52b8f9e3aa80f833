package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de persistencia para ítems de inventario.
type InventoryItemRepository interface {
	Create(item *entity.InventoryItem) error
	GetByID(id string) (*entity.InventoryItem, error)
	// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx.
	GetForUpdate(id string) (*entity.InventoryItem, error)
	ListByBusiness(businessID string, onlyActive bool) ([]*entity.InventoryItem, error)
	// ListLowStock lista ítems activos con stock actual por debajo del mínimo.
	ListLowStock(businessID string) ([]*entity.InventoryItem, error)
	Update(item *entity.InventoryItem) error
	// UpdateStock fija el stock actual; solo el motor de movimientos lo invoca, dentro de una tx.
	UpdateStock(id string, stock decimal.Decimal) error
	SoftDelete(id string) error
}

// InventoryMovementRepository define el puerto de persistencia para el libro de movimientos.
// Los movimientos son inmutables: solo Create y lecturas.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
}
