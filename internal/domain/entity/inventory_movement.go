package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeEntrada = "entrada" // compra / ingreso
	MovementTypeSalida  = "salida"  // consumo / salida manual
	MovementTypeAjuste  = "ajuste"  // corrección, signo lo define el usuario
	MovementTypeMerma   = "merma"   // pérdida / desperdicio
)

// InventoryMovement es una entrada inmutable del libro de inventario.
// Quantity ya viene con signo (positivo entrada, negativo salida/merma) y
// StockAfter == StockBefore + Quantity siempre. Se escribe en la misma transacción
// que actualiza el stock del ítem.
type InventoryMovement struct {
	ID          string
	BusinessID  string
	ItemID      string
	Type        string
	Quantity    decimal.Decimal // delta con signo
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	Reason      string
	CreatedBy   string
	CreatedAt   time.Time
}

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste, MovementTypeMerma:
		return true
	}
	return false
}
