package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-erp/internal/application/ddt"
	"github.com/tu-usuario/almacen-erp/internal/application/dto"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// DdtHandler expone el ciclo de vida de los DDT: confirmación y cancelación.
type DdtHandler struct {
	confirmUC *ddt.ConfirmDdtUseCase
	cancelUC  *ddt.CancelDdtUseCase
	ddtRepo   repository.DdtRepository
}

// NewDdtHandler construye el handler de DDT.
func NewDdtHandler(confirmUC *ddt.ConfirmDdtUseCase, cancelUC *ddt.CancelDdtUseCase, ddtRepo repository.DdtRepository) *DdtHandler {
	return &DdtHandler{confirmUC: confirmUC, cancelUC: cancelUC, ddtRepo: ddtRepo}
}

// GetByID godoc
// @Summary      Consultar un DDT con sus renglones
// @Tags         ddt
// @Produce      json
// @Param        id  path  string  true  "ddt"
// @Success      200  {object}  dto.DdtResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ddt/{id} [get]
func (h *DdtHandler) GetByID(c *fiber.Ctx) error {
	doc, err := h.ddtRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if doc == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "DDT no encontrado"})
	}
	return c.JSON(dto.ToDdtResponse(doc))
}

// Confirm godoc
// @Summary      Confirmar un DDT (genera los movimientos de stock)
// @Tags         ddt
// @Produce      json
// @Param        id  path  string  true  "ddt"
// @Success      204  "confirmado"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "estado inválido o stock insuficiente"
// @Router       /api/ddt/{id}/confirm [post]
func (h *DdtHandler) Confirm(c *fiber.Ctx) error {
	if err := h.confirmUC.Execute(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel godoc
// @Summary      Cancelar un DDT confirmado (revierte sus movimientos)
// @Tags         ddt
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ddt"
// @Param        body  body  dto.CancelDdtRequest  true  "motivo"
// @Success      204   "cancelado"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "solo se cancelan DDT confirmados"
// @Router       /api/ddt/{id}/cancel [post]
func (h *DdtHandler) Cancel(c *fiber.Ctx) error {
	var in dto.CancelDdtRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	if err := h.cancelUC.Execute(c.Context(), c.Params("id"), in.Reason, GetUserID(c)); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
