package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/internal/domain/entity"
	"github.com/comandapos/comanda-api/internal/domain/repository"
)

// AppendItems agrega líneas a una comanda no cancelada con el precio de catálogo
// al momento del agregado. Dentro de la transacción se relee la comanda con
// GetForUpdate: el estado cancelado se reverifica y el nuevo total se calcula
// sobre la fila bloqueada, nunca sobre la lectura previa (dos agregados
// concurrentes se serializan en el lock en vez de pisarse el total). Después del
// commit se reimprime el ticket completo para que cocina vea la comanda actualizada.
func (uc *OrderUseCase) AppendItems(ctx context.Context, businessID, userID, orderID string, in dto.AppendItemsRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if order.IsCancelled() {
		return nil, domain.ErrOrderCancelled
	}

	cart := CartFromRequest(in.Items)
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	lines, added, err := uc.priceLines(businessID, cart.Lines())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	newItems := make([]*entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		newItems = append(newItems, &entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     order.ID,
			ProductID:   l.product.ID,
			ProductName: l.product.Name,
			Quantity:    l.quantity,
			UnitPrice:   l.product.Price,
			Subtotal:    l.subtotal,
			Note:        l.note,
			CreatedAt:   now,
		})
	}

	var newTotal decimal.Decimal
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		locked, err := orderRepo.GetForUpdate(order.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.IsCancelled() {
			return domain.ErrOrderCancelled
		}
		for _, it := range newItems {
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
		}
		newTotal = locked.Total.Add(added)
		return orderRepo.UpdateTotal(order.ID, newTotal, userID)
	})
	if err != nil {
		return nil, err
	}
	order.Total = newTotal
	order.ModifiedBy = &userID

	allItems, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		allItems = newItems // el ticket sale al menos con lo recién agregado
	}
	printed := uc.printAndMark(ctx, order, allItems)
	return uc.toResponse(order, allItems, printed), nil
}

// Cancel marca la comanda como cancelada. Terminal e irreversible; no toca líneas
// ni total, solo el estado. Las canceladas quedan fuera de toda agregación de ventas.
func (uc *OrderUseCase) Cancel(ctx context.Context, businessID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if order.IsCancelled() {
		return nil, domain.ErrOrderCancelled
	}
	if err := uc.orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelado); err != nil {
		return nil, err
	}
	order.Status = entity.OrderStatusCancelado
	items, _ := uc.orderRepo.ListItems(order.ID)
	return uc.toResponse(order, items, false), nil
}

// MarkPrinted transiciona pendiente -> vendido. Solo se invoca tras una impresión
// confirmada; desde cualquier otro estado es un conflicto.
func (uc *OrderUseCase) MarkPrinted(ctx context.Context, businessID, orderID string) error {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return domain.ErrForbidden
	}
	if order.Status != entity.OrderStatusPendiente {
		return domain.ErrConflict
	}
	return uc.orderRepo.UpdateStatus(order.ID, entity.OrderStatusVendido)
}

// Reprint relee la comanda con sus líneas y vuelve a invocar el puente sin tocar el
// estado. Idempotente por diseño: vale para comandas vendidas o incluso canceladas
// (cocina puede necesitar un duplicado). Retorna si el puente confirmó.
func (uc *OrderUseCase) Reprint(ctx context.Context, businessID, orderID string) (bool, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return false, domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return false, domain.ErrForbidden
	}
	items, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		return false, err
	}
	ticket := uc.buildTicket(order, items)
	if err := uc.printer.PrintTicket(ctx, ticket); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("reimpresión fallida")
		return false, nil
	}
	return true, nil
}

// GetByID obtiene una comanda con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, businessID, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	printed := order.Status == entity.OrderStatusVendido
	return uc.toResponse(order, items, printed), nil
}

// List lista comandas del negocio con filtros de estado y día.
func (uc *OrderUseCase) List(ctx context.Context, businessID string, f dto.OrderListFilter) (*dto.OrderListResponse, error) {
	f.DefaultPage()
	filter := repository.OrderFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if f.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", f.Date, time.Local)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		next := day.AddDate(0, 0, 1)
		filter.From = &day
		filter.To = &next
	}
	list, err := uc.orderRepo.ListByBusiness(businessID, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *uc.toResponse(o, nil, o.Status == entity.OrderStatusVendido))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// TicketFor arma el ticket imprimible de una comanda (para el PDF del duplicado).
func (uc *OrderUseCase) TicketFor(ctx context.Context, businessID, orderID string) (*Ticket, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil || order == nil {
		return nil, domain.ErrNotFound
	}
	if order.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	return uc.buildTicket(order, items), nil
}
