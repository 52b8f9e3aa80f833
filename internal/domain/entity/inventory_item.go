package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem representa un insumo del inventario.
// Invariante: CurrentStock es la suma neta de todos los movimientos del ítem y nunca
// es negativo; solo el libro de movimientos lo modifica (nunca un update directo).
type InventoryItem struct {
	ID            string
	BusinessID    string
	Name          string
	Category      string
	Unit          string // unidad de medida: kg, lt, und...
	CurrentStock  decimal.Decimal
	MinStock      decimal.Decimal
	PurchasePrice decimal.Decimal
	Supplier      string
	Location      string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el ítem está por debajo del mínimo configurado.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock.LessThan(i.MinStock)
}
