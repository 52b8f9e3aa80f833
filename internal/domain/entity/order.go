package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una comanda.
// pendiente -> vendido (comanda impresa en cocina); cualquier estado -> cancelado (terminal).
const (
	OrderStatusPendiente = "pendiente"
	OrderStatusVendido   = "vendido"
	OrderStatusCancelado = "cancelado"
)

// Métodos de pago aceptados.
const (
	PaymentEfectivo      = "efectivo"
	PaymentTarjeta       = "tarjeta"
	PaymentTransferencia = "transferencia"
)

// Order representa una comanda: una transacción de cliente con una o más líneas,
// atada a una mesa o slot de atención.
// Invariante: Total == suma de subtotales de las líneas + DeliveryFee cuando IsDelivery.
type Order struct {
	ID              string
	BusinessID      string
	DailyNumber     int // consecutivo visible, reinicia por día de negocio
	TableID         string
	TableName       string // denormalizado para el ticket de cocina
	Status          string
	Total           decimal.Decimal
	PaymentMethod   string
	IsDelivery      bool
	DeliveryAddress string
	DeliveryFee     decimal.Decimal
	CustomerName    string
	Note            string
	CreatedBy       string  // mesero que tomó la comanda
	ModifiedBy      *string // último que agregó líneas, nil si nunca se modificó
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCancelled indica si la comanda está en estado terminal.
func (o *Order) IsCancelled() bool { return o.Status == OrderStatusCancelado }

// ValidPaymentMethod valida el método de pago.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentEfectivo, PaymentTarjeta, PaymentTransferencia:
		return true
	}
	return false
}

// OrderItem es una línea de comanda. Captura nombre y precio unitario del producto
// al momento de la venta; nunca se elimina individualmente (la cancelación es por comanda).
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Note        string // nota de preparación, texto libre
	CreatedAt   time.Time
}
