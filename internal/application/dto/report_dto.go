package dto

import "github.com/shopspring/decimal"

// DashboardResponse resumen del día de negocio: ventas (las canceladas no cuentan)
// y alertas de inventario.
type DashboardResponse struct {
	Date          string                  `json:"date"` // YYYY-MM-DD
	SalesTotal    decimal.Decimal         `json:"sales_total"`
	OrderCount    int                     `json:"order_count"`
	LowStockCount int                     `json:"low_stock_count"`
	LowStockItems []InventoryItemResponse `json:"low_stock_items"`
}
