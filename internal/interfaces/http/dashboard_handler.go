package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comandapos/comanda-api/internal/application/reporting"
)

// DashboardHandler agregados del día (protegido).
type DashboardHandler struct {
	uc *reporting.ReportingUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.ReportingUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero del día
// @Description  Ventas del día (las comandas canceladas no cuentan) e insumos bajo el mínimo.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), GetBusinessID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
