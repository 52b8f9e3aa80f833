package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest alta de insumo. El stock inicial entra como un
// movimiento de entrada, no como campo del ítem.
type CreateInventoryItemRequest struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	MinStock      decimal.Decimal `json:"min_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Supplier      string          `json:"supplier"`
	Location      string          `json:"location"`
}

// UpdateInventoryItemRequest campos opcionales a modificar. El stock actual no es
// editable directamente: solo cambia vía movimientos.
type UpdateInventoryItemRequest struct {
	Name          *string          `json:"name"`
	Category      *string          `json:"category"`
	Unit          *string          `json:"unit"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	Supplier      *string          `json:"supplier"`
	Location      *string          `json:"location"`
}

// InventoryItemResponse insumo del inventario.
type InventoryItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	MinStock      decimal.Decimal `json:"min_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Supplier      string          `json:"supplier,omitempty"`
	Location      string          `json:"location,omitempty"`
	LowStock      bool            `json:"low_stock"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RegisterMovementRequest registro de un movimiento de inventario.
// Quantity viene en valor absoluto para entrada/salida/merma (el motor normaliza el
// signo por tipo); para ajuste el signo lo decide el usuario.
type RegisterMovementRequest struct {
	ItemID   string          `json:"item_id"`
	Type     string          `json:"type"` // entrada | salida | ajuste | merma
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
}

// MovementResponse entrada del libro de movimientos.
type MovementResponse struct {
	ID          string          `json:"id"`
	ItemID      string          `json:"item_id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stock_before"`
	StockAfter  decimal.Decimal `json:"stock_after"`
	Reason      string          `json:"reason,omitempty"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}
