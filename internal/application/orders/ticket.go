package orders

import (
	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/domain/entity"
)

// Ticket es el contenido de una comanda lista para imprimir: cabecera del negocio
// más la comanda con sus líneas. Es la única forma que viaja al puente de impresión
// y al generador de PDF; el shape JSON del puente es fijo y sin versión, cualquier
// cambio debe coordinarse con el servicio de impresión.
type Ticket struct {
	OrderID         string
	DailyNumber     int
	TableName       string
	WaiterName      string
	CustomerName    string
	Timestamp       string // hora local formateada, lista para el ticket
	Items           []TicketItem
	Total           decimal.Decimal
	IsDelivery      bool
	DeliveryAddress string
	DeliveryFee     decimal.Decimal
	PaymentMethod   string
	Note            string

	BusinessName    string
	BusinessAddress string
	BusinessPhone   string
}

// TicketItem una línea del ticket.
type TicketItem struct {
	Quantity    int
	ProductName string
	UnitPrice   decimal.Decimal
	Note        string
}

// ticketTimeLayout formato de la marca de tiempo en el ticket físico.
const ticketTimeLayout = "02/01/2006 15:04"

// BuildTicket arma el ticket desde la comanda persistida, sus líneas y el negocio.
// Reimprimir produce contenido idéntico salvo por nada: la marca de tiempo es la de
// creación de la comanda, no la del intento de impresión.
func BuildTicket(order *entity.Order, items []*entity.OrderItem, business *entity.Business, waiterName string) *Ticket {
	t := &Ticket{
		OrderID:         order.ID,
		DailyNumber:     order.DailyNumber,
		TableName:       order.TableName,
		WaiterName:      waiterName,
		CustomerName:    order.CustomerName,
		Timestamp:       order.CreatedAt.Format(ticketTimeLayout),
		Total:           order.Total,
		IsDelivery:      order.IsDelivery,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryFee:     order.DeliveryFee,
		PaymentMethod:   order.PaymentMethod,
		Note:            order.Note,
	}
	if business != nil {
		t.BusinessName = business.Name
		t.BusinessAddress = business.Address
		t.BusinessPhone = business.Phone
	}
	for _, it := range items {
		t.Items = append(t.Items, TicketItem{
			Quantity:    it.Quantity,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Note:        it.Note,
		})
	}
	return t
}
