package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-produccion/internal/application/stock"
)

// StockHandler consultas de existencias e historial (protegido).
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Summary godoc
// @Summary      Existencias de materias primas y productos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock [get]
func (h *StockHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Historial de actividad reciente
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "máximo de entradas (default 50)"
// @Success      200  {array}  dto.ActivityLogResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/activity-logs [get]
func (h *StockHandler) Activity(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivity(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
