package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-produccion/internal/application/dto"
	"github.com/jhoicas/inventario-produccion/internal/application/procurement"
)

// ProcurementHandler compras de materia prima (protegido, admin).
type ProcurementHandler struct {
	uc *procurement.UseCase
}

// NewProcurementHandler construye el handler.
func NewProcurementHandler(uc *procurement.UseCase) *ProcurementHandler {
	return &ProcurementHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra de materia prima
// @Tags         procurement
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcurementRequest  true  "material_id, qty, note"
// @Success      201   {object}  dto.ProcurementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/procurements [post]
func (h *ProcurementHandler) Create(c *fiber.Ctx) error {
	var in dto.ProcurementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
