package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-erp/internal/application/dto"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// MovementHandler expone el libro de movimientos: consulta, reversión y
// reporte de duplicados.
type MovementHandler struct {
	reverseUC *stockmovement.ReverseStockMovementUseCase
	report    *stockmovement.DuplicateMovementReport
	movRepo   repository.StockMovementRepository
}

// NewMovementHandler construye el handler de movimientos.
func NewMovementHandler(
	reverseUC *stockmovement.ReverseStockMovementUseCase,
	report *stockmovement.DuplicateMovementReport,
	movRepo repository.StockMovementRepository,
) *MovementHandler {
	return &MovementHandler{reverseUC: reverseUC, report: report, movRepo: movRepo}
}

// Reverse godoc
// @Summary      Revertir un movimiento (compensación, nunca borrado)
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "movimiento original"
// @Param        body  body  dto.ReverseMovementRequest  true  "motivo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/reverse [post]
func (h *MovementHandler) Reverse(c *fiber.Ctx) error {
	var in dto.ReverseMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "reason es requerido"})
	}
	reversal, err := h.reverseUC.Execute(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(reversal))
}

// GetByID godoc
// @Summary      Consultar un movimiento
// @Tags         movements
// @Produce      json
// @Param        id  path  string  true  "movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.movRepo.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(dto.ToMovementResponse(m))
}

// ListByWarehouse godoc
// @Summary      Listar movimientos de una bodega
// @Tags         movements
// @Produce      json
// @Param        warehouse_id  path   string  true   "bodega"
// @Param        from          query  string  false  "RFC3339"
// @Param        to            query  string  false  "RFC3339"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/warehouse/{warehouse_id} [get]
func (h *MovementHandler) ListByWarehouse(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.movRepo.ListByWarehouse(c.Params("warehouse_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// DuplicateReport godoc
// @Summary      Reporte de pares OUTPUT/SITE_ALLOCATION sospechosos de doble descuento
// @Tags         movements
// @Produce      json
// @Param        from  query  string  false  "RFC3339"
// @Param        to    query  string  false  "RFC3339"
// @Success      200   {object}  dto.DuplicateReportResponse
// @Router       /api/movements/duplicates [get]
func (h *MovementHandler) DuplicateReport(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pairs, err := h.report.Execute(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.DuplicateReportResponse{
		Pairs: make([]dto.DuplicateMovementDTO, 0, len(pairs)),
		Total: len(pairs),
	}
	if from != nil {
		out.From = *from
	}
	if to != nil {
		out.To = *to
	}
	for _, p := range pairs {
		out.Pairs = append(out.Pairs, dto.DuplicateMovementDTO{
			ProductName:        p.ProductName,
			WarehouseName:      p.WarehouseName,
			SiteName:           p.SiteName,
			ReferenceDocument:  p.ReferenceDocument,
			OutputID:           p.OutputID,
			OutputCode:         p.OutputCode,
			OutputQuantity:     p.OutputQuantity,
			AllocationID:       p.AllocationID,
			AllocationCode:     p.AllocationCode,
			AllocationQuantity: p.AllocationQuantity,
			Date:               p.Date.Format("2006-01-02"),
		})
	}
	return c.JSON(out)
}

// parseDateRange lee from/to en RFC3339 de la query string (ambos opcionales).
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "from debe ser RFC3339")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, fiber.NewError(fiber.StatusBadRequest, "to debe ser RFC3339")
		}
		to = &t
	}
	return from, to, nil
}
