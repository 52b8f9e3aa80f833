package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea de la comanda entrante. El precio no viaja en el
// request: se captura del catálogo al momento de la venta.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Note      string `json:"note"`
}

// CreateOrderRequest envío de una comanda nueva.
// DeliveryAddress y DeliveryFee solo son obligatorios si la mesa es de tipo delivery.
type CreateOrderRequest struct {
	TableID         string             `json:"table_id"`
	PaymentMethod   string             `json:"payment_method"`
	CustomerName    string             `json:"customer_name"`
	Note            string             `json:"note"`
	DeliveryAddress string             `json:"delivery_address"`
	DeliveryFee     decimal.Decimal    `json:"delivery_fee"`
	Items           []OrderItemRequest `json:"items"`
}

// AppendItemsRequest líneas a agregar a una comanda existente.
type AppendItemsRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemResponse línea de comanda persistida.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Note        string          `json:"note,omitempty"`
}

// OrderResponse comanda con sus líneas.
type OrderResponse struct {
	ID              string              `json:"id"`
	DailyNumber     int                 `json:"daily_number"`
	TableID         string              `json:"table_id"`
	TableName       string              `json:"table_name"`
	Status          string              `json:"status"`
	Total           decimal.Decimal     `json:"total"`
	PaymentMethod   string              `json:"payment_method"`
	IsDelivery      bool                `json:"is_delivery"`
	DeliveryAddress string              `json:"delivery_address,omitempty"`
	DeliveryFee     decimal.Decimal     `json:"delivery_fee"`
	CustomerName    string              `json:"customer_name,omitempty"`
	Note            string              `json:"note,omitempty"`
	CreatedBy       string              `json:"created_by"`
	ModifiedBy      *string             `json:"modified_by,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	Items           []OrderItemResponse `json:"items"`
	// Printed refleja el resultado del último intento de impresión automática;
	// false no invalida la comanda (queda pendiente y reimprimible).
	Printed bool `json:"printed"`
}

// OrderListFilter filtros del listado de comandas.
type OrderListFilter struct {
	Status string `query:"status"`
	Date   string `query:"date"` // YYYY-MM-DD, día de negocio
	PageRequest
}

// OrderListResponse listado de comandas (sin líneas).
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
