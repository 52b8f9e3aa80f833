package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/comandapos/comanda-api/internal/application/dto"
	"github.com/comandapos/comanda-api/internal/application/orders"
)

// PDFGenerator puerto del generador del duplicado en PDF de comandas.
type PDFGenerator interface {
	GenerateTicketPDF(ctx context.Context, ticket *orders.Ticket) ([]byte, error)
}

// OrderHandler maneja el ciclo de vida de las comandas (protegido).
type OrderHandler struct {
	uc  *orders.OrderUseCase
	pdf PDFGenerator
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.OrderUseCase, pdf PDFGenerator) *OrderHandler {
	return &OrderHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear comanda
// @Description  Valida mesa, método de pago y líneas; persiste todo en una transacción
//
//	y dispara la impresión en cocina. Si el puente confirma, la comanda queda
//	vendida; si no, queda pendiente y reimprimible.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "table_id, payment_method, items; delivery_address y delivery_fee si la mesa es delivery"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetBusinessID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar comandas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendiente | vendido | cancelado"
// @Param        date    query  string  false  "Día de negocio (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Tamaño de página (default 20)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var f dto.OrderListFilter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválido"})
	}
	out, err := h.uc.List(c.Context(), GetBusinessID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener comanda con sus líneas
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comanda"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AppendItems godoc
// @Summary      Agregar líneas a una comanda
// @Description  Rechaza con 409 si la comanda está cancelada. Las líneas nuevas y el
//
//	nuevo total se confirman en una sola transacción y se reimprime el ticket completo.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la comanda"
// @Param        body  body  dto.AppendItemsRequest  true  "items"
// @Success      200   {object}  dto.OrderResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/items [post]
func (h *OrderHandler) AppendItems(c *fiber.Ctx) error {
	var in dto.AppendItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AppendItems(c.Context(), GetBusinessID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar comanda (terminal)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comanda"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkPrinted godoc
// @Summary      Confirmar impresión manual
// @Description  Transiciona pendiente -> vendido. Pensado para cuando la impresión se
//
//	resolvió por fuera del puente.
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comanda"
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/printed [post]
func (h *OrderHandler) MarkPrinted(c *fiber.Ctx) error {
	if err := h.uc.MarkPrinted(c.Context(), GetBusinessID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "comanda marcada como vendida"})
}

// Reprint godoc
// @Summary      Reimprimir comanda
// @Description  Vuelve a enviar el ticket al puente sin tocar el estado. El contenido
//
//	es idéntico al original (la marca de tiempo es la de creación).
//
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la comanda"
// @Success      200  {object}  map[string]bool
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/reprint [post]
func (h *OrderHandler) Reprint(c *fiber.Ctx) error {
	printed, err := h.uc.Reprint(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"printed": printed})
}

// TicketPDF godoc
// @Summary      Duplicado de la comanda en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la comanda"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ticket.pdf [get]
func (h *OrderHandler) TicketPDF(c *fiber.Ctx) error {
	ticket, err := h.uc.TicketFor(c.Context(), GetBusinessID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.pdf.GenerateTicketPDF(c.Context(), ticket)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`inline; filename="comanda-%d.pdf"`, ticket.DailyNumber))
	return c.Send(pdfBytes)
}
