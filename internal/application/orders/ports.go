package orders

import (
	"context"

	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// OrdersTxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de comandas atado a esa tx. Garantiza que comanda, líneas y total se
// escriban todo-o-nada: no existe la ventana de escritura parcial del flujo original.
type OrdersTxRunner interface {
	RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// TicketPrinter es el puente de impresión de cocina. Retorna nil solo cuando el
// servicio confirmó la impresión; cualquier otro resultado (timeout, rechazo,
// success=false) es error. El caller nunca trata ese error como fatal.
type TicketPrinter interface {
	PrintTicket(ctx context.Context, ticket *Ticket) error
}
