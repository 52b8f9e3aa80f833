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
	"github.com/comandapos/comanda-api/pkg/logger"
)

// OrderUseCase maneja el ciclo de vida de las comandas: creación, agregado de
// líneas, cancelación e impresión. Toda mutación de varias filas corre dentro de
// una transacción (OrdersTxRunner); la impresión es un efecto posterior al commit
// y nunca afecta la validez de la comanda.
type OrderUseCase struct {
	txRunner     OrdersTxRunner
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	tableRepo    repository.TableRepository
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	printer      TicketPrinter
	log          *logger.Logger
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner OrdersTxRunner,
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	tableRepo repository.TableRepository,
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	printer TicketPrinter,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		tableRepo:    tableRepo,
		userRepo:     userRepo,
		businessRepo: businessRepo,
		printer:      printer,
		log:          log,
	}
}

// pricedLine línea con precio y nombre capturados del catálogo al momento de la venta.
type pricedLine struct {
	product  *entity.Product
	quantity int
	note     string
	subtotal decimal.Decimal
}

// Create valida la comanda completa antes de escribir nada (mesa, carrito no vacío,
// método de pago; dirección y tarifa positiva si la mesa es delivery), la persiste
// con sus líneas en una sola transacción y dispara la impresión en cocina.
// Si el puente confirma, la comanda pasa de pendiente a vendido; si no, queda
// pendiente, visible y reimprimible.
func (uc *OrderUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	cart := CartFromRequest(in.Items)
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	if in.TableID == "" || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}

	table, err := uc.tableRepo.GetByID(in.TableID)
	if err != nil || table == nil {
		return nil, domain.ErrNotFound
	}
	if table.BusinessID != businessID {
		return nil, domain.ErrForbidden
	}
	if !table.Active {
		return nil, domain.ErrInvalidInput
	}

	isDelivery := table.IsDelivery()
	deliveryFee := decimal.Zero
	deliveryAddress := ""
	if isDelivery {
		if in.DeliveryAddress == "" || !in.DeliveryFee.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		deliveryFee = in.DeliveryFee
		deliveryAddress = in.DeliveryAddress
	}

	lines, total, err := uc.priceLines(businessID, cart.Lines())
	if err != nil {
		return nil, err
	}
	if isDelivery {
		total = total.Add(deliveryFee)
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		BusinessID:      businessID,
		TableID:         table.ID,
		TableName:       table.Name,
		Status:          entity.OrderStatusPendiente,
		Total:           total,
		PaymentMethod:   in.PaymentMethod,
		IsDelivery:      isDelivery,
		DeliveryAddress: deliveryAddress,
		DeliveryFee:     deliveryFee,
		CustomerName:    in.CustomerName,
		Note:            in.Note,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, &entity.OrderItem{
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

	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository) error {
		n, err := orderRepo.NextDailyNumber(businessID, now)
		if err != nil {
			return err
		}
		order.DailyNumber = n
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, it := range items {
			if err := orderRepo.CreateItem(it); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	printed := uc.printAndMark(ctx, order, items)
	return uc.toResponse(order, items, printed), nil
}

// priceLines valida cada producto (existe, activo, del negocio) y captura precio y
// nombre del catálogo. Retorna las líneas con subtotal y la suma.
func (uc *OrderUseCase) priceLines(businessID string, cartLines []CartLine) ([]pricedLine, decimal.Decimal, error) {
	lines := make([]pricedLine, 0, len(cartLines))
	total := decimal.Zero
	for _, cl := range cartLines {
		product, err := uc.productRepo.GetByID(cl.ProductID)
		if err != nil || product == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		if product.BusinessID != businessID {
			return nil, decimal.Zero, domain.ErrForbidden
		}
		if !product.Active {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(cl.Quantity)))
		lines = append(lines, pricedLine{product: product, quantity: cl.Quantity, note: cl.Note, subtotal: subtotal})
		total = total.Add(subtotal)
	}
	return lines, total, nil
}

// printAndMark imprime el ticket y, si el puente confirma y la comanda sigue
// pendiente, la marca como vendida. Cualquier falla de impresión se registra y se
// traga: la comanda ya es válida.
func (uc *OrderUseCase) printAndMark(ctx context.Context, order *entity.Order, items []*entity.OrderItem) bool {
	ticket := uc.buildTicket(order, items)
	if err := uc.printer.PrintTicket(ctx, ticket); err != nil {
		uc.log.Warn().Err(err).
			Str("order_id", order.ID).
			Int("daily_number", order.DailyNumber).
			Msg("puente de impresión no disponible, la comanda queda pendiente")
		return false
	}
	if order.Status == entity.OrderStatusPendiente {
		if err := uc.orderRepo.UpdateStatus(order.ID, entity.OrderStatusVendido); err != nil {
			uc.log.Error().Err(err).Str("order_id", order.ID).Msg("marcar comanda como vendida")
			return true // impresa aunque el update falle; reintentable vía reimpresión
		}
		order.Status = entity.OrderStatusVendido
	}
	return true
}

// buildTicket resuelve mesero y negocio (mejor esfuerzo) y arma el ticket.
func (uc *OrderUseCase) buildTicket(order *entity.Order, items []*entity.OrderItem) *Ticket {
	waiterName := ""
	if u, err := uc.userRepo.GetByID(order.CreatedBy); err == nil && u != nil {
		waiterName = u.Name
	}
	business, _ := uc.businessRepo.GetByID(order.BusinessID)
	return BuildTicket(order, items, business, waiterName)
}

func (uc *OrderUseCase) toResponse(order *entity.Order, items []*entity.OrderItem, printed bool) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:              order.ID,
		DailyNumber:     order.DailyNumber,
		TableID:         order.TableID,
		TableName:       order.TableName,
		Status:          order.Status,
		Total:           order.Total,
		PaymentMethod:   order.PaymentMethod,
		IsDelivery:      order.IsDelivery,
		DeliveryAddress: order.DeliveryAddress,
		DeliveryFee:     order.DeliveryFee,
		CustomerName:    order.CustomerName,
		Note:            order.Note,
		CreatedBy:       order.CreatedBy,
		ModifiedBy:      order.ModifiedBy,
		CreatedAt:       order.CreatedAt,
		Items:           make([]dto.OrderItemResponse, 0, len(items)),
		Printed:         printed,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
			Note:        it.Note,
		})
	}
	return resp
}
