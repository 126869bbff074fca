package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-produccion/internal/application/distribution"
	"github.com/jhoicas/inventario-produccion/internal/application/dto"
)

// DistributionHandler órdenes de distribución (protegido).
type DistributionHandler struct {
	uc *distribution.UseCase
}

// NewDistributionHandler construye el handler.
func NewDistributionHandler(uc *distribution.UseCase) *DistributionHandler {
	return &DistributionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar orden de distribución (descuenta cargas)
// @Tags         distribution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDistributionOrderRequest  true  "load_date, dispatch_date, location, items"
// @Success      201   {object}  dto.DistributionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/distribution-orders [post]
func (h *DistributionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDistributionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de distribución
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  dto.DistributionOrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distribution-orders/{id} [get]
func (h *DistributionHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden (cargas, devoluciones y estado)
// @Tags         distribution
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                                 true  "ID de la orden"
// @Param        body  body  dto.UpdateDistributionOrderRequest  true  "orden completa; los ítems se reemplazan"
// @Success      200   {object}  dto.DistributionOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/distribution-orders/{id} [put]
func (h *DistributionHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	var in dto.UpdateDistributionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden (revierte su efecto neto)
// @Tags         distribution
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {object}  inventory.Effects
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/distribution-orders/{id} [delete]
func (h *DistributionHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	effects, err := h.uc.Delete(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "orden eliminada", "effects": effects})
}

// Manifest godoc
// @Summary      Hoja de carga en PDF
// @Tags         distribution
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distribution-orders/{id}/manifest [get]
func (h *DistributionHandler) Manifest(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return badID(c)
	}
	pdf, err := h.uc.Manifest(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="manifest-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Send(pdf)
}
