package entity

import (
	"strings"
	"time"
)

// Tipos de mesa (slot de atención). El tipo se guarda explícito al crear la mesa;
// nunca se vuelve a inferir del nombre en lecturas.
const (
	TableTypeDineIn   = "dine_in"
	TableTypeDelivery = "delivery"
	TableTypeTakeout  = "takeout"
)

// Table representa un slot de atención: mesa física, domicilio o para llevar.
type Table struct {
	ID         string
	BusinessID string
	Name       string
	Type       string // dine_in, delivery, takeout
	Capacity   int
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsDelivery indica si el slot corresponde a un pedido a domicilio.
func (t *Table) IsDelivery() bool { return t.Type == TableTypeDelivery }

// DeriveTableType clasifica una mesa por su nombre. Solo se usa al crear la mesa
// cuando el tipo viene vacío (compatibilidad con datos importados donde el nombre
// codificaba el tipo: "domicilio" = delivery, "llevar" = takeout).
func DeriveTableType(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "domicilio"):
		return TableTypeDelivery
	case strings.Contains(n, "llevar"):
		return TableTypeTakeout
	default:
		return TableTypeDineIn
	}
}

// ValidTableType valida un tipo de mesa explícito.
func ValidTableType(t string) bool {
	switch t {
	case TableTypeDineIn, TableTypeDelivery, TableTypeTakeout:
		return true
	}
	return false
}
