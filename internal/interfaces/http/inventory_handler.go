package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-erp/internal/application/dto"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// InventoryHandler expone el motor de inventario: ajustes, reservas y consulta.
type InventoryHandler struct {
	adjustUC  *inventory.AdjustInventoryUseCase
	reserveUC *inventory.ReserveInventoryUseCase
	releaseUC *inventory.ReleaseReservationUseCase
	invRepo   repository.InventoryRepository
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(
	adjustUC *inventory.AdjustInventoryUseCase,
	reserveUC *inventory.ReserveInventoryUseCase,
	releaseUC *inventory.ReleaseReservationUseCase,
	invRepo repository.InventoryRepository,
) *InventoryHandler {
	return &InventoryHandler{adjustUC: adjustUC, reserveUC: reserveUC, releaseUC: releaseUC, invRepo: invRepo}
}

// Adjust godoc
// @Summary      Ajustar inventario (delta con signo)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "ajuste"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.adjustUC.Execute(c.Context(), inventory.AdjustInput{
		ProductID:         in.ProductID,
		WarehouseID:       in.WarehouseID,
		Adjustment:        in.Adjustment,
		UnitCost:          in.UnitCost,
		Notes:             in.Notes,
		ReferenceDocument: in.ReferenceDocument,
		UserID:            GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(movement))
}

// Reserve godoc
// @Summary      Reservar stock para un cantiere
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveInventoryRequest  true  "reserva"
// @Success      204   "reservado"
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/inventory/reserve [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.ReserveInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.reserveUC.Execute(c.Context(), inventory.ReserveInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		SiteID:      in.SiteID,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Release godoc
// @Summary      Liberar una reserva
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReleaseReservationRequest  true  "liberación"
// @Success      204   "liberado"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/release [post]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.ReleaseReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.releaseUC.Execute(c.Context(), inventory.ReleaseInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		SiteID:      in.SiteID,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStock godoc
// @Summary      Consultar stock de un producto en una bodega
// @Tags         inventory
// @Produce      json
// @Param        warehouse_id  path  string  true  "bodega"
// @Param        product_id    path  string  true  "producto"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{warehouse_id}/{product_id} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	inv, err := h.invRepo.Get(c.Params("product_id"), c.Params("warehouse_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if inv == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin registro de inventario para ese producto/bodega"})
	}
	return c.JSON(dto.ToInventoryResponse(inv))
}

// inventoryError mapea errores de dominio del motor de inventario a HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insufficient.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "registro no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
