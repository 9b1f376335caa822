package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
)

// AdjustInventoryRequest body para POST /api/inventory/adjust.
// Adjustment es con signo: positivo aumenta, negativo disminuye.
type AdjustInventoryRequest struct {
	ProductID         string           `json:"product_id" validate:"required,uuid"`
	WarehouseID       string           `json:"warehouse_id" validate:"required,uuid"`
	Adjustment        decimal.Decimal  `json:"adjustment" validate:"required"`
	UnitCost          *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes             string           `json:"notes"`
	ReferenceDocument string           `json:"reference_document"`
}

// ReserveInventoryRequest body para POST /api/inventory/reserve.
type ReserveInventoryRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	SiteID      *string         `json:"site_id,omitempty"`
}

// ReleaseReservationRequest body para POST /api/inventory/release.
type ReleaseReservationRequest struct {
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"required,uuid"`
	Quantity    decimal.Decimal `json:"quantity" validate:"required"`
	SiteID      *string         `json:"site_id,omitempty"`
}

// InventoryResponse salida del stock de un producto en una bodega.
type InventoryResponse struct {
	ID                 string           `json:"id"`
	ProductID          string           `json:"product_id"`
	WarehouseID        string           `json:"warehouse_id"`
	QuantityAvailable  decimal.Decimal  `json:"quantity_available"`
	QuantityReserved   decimal.Decimal  `json:"quantity_reserved"`
	QuantityInTransit  decimal.Decimal  `json:"quantity_in_transit"`
	QuantityQuarantine decimal.Decimal  `json:"quantity_quarantine"`
	QuantityFree       decimal.Decimal  `json:"quantity_free"`
	MinimumStock       *decimal.Decimal `json:"minimum_stock,omitempty"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ToInventoryResponse convierte la entidad a su DTO de salida.
func ToInventoryResponse(inv *entity.Inventory) *InventoryResponse {
	if inv == nil {
		return nil
	}
	return &InventoryResponse{
		ID:                 inv.ID,
		ProductID:          inv.ProductID,
		WarehouseID:        inv.WarehouseID,
		QuantityAvailable:  inv.QuantityAvailable,
		QuantityReserved:   inv.QuantityReserved,
		QuantityInTransit:  inv.QuantityInTransit,
		QuantityQuarantine: inv.QuantityQuarantine,
		QuantityFree:       inv.QuantityFree(),
		MinimumStock:       inv.MinimumStock,
		UpdatedAt:          inv.UpdatedAt,
	}
}

// ReverseMovementRequest body para POST /api/movements/:id/reverse.
type ReverseMovementRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID                string           `json:"id"`
	Code              string           `json:"code"`
	DdtID             *string          `json:"ddt_id,omitempty"`
	ProductID         string           `json:"product_id"`
	WarehouseID       string           `json:"warehouse_id"`
	FromWarehouseID   *string          `json:"from_warehouse_id,omitempty"`
	ToWarehouseID     *string          `json:"to_warehouse_id,omitempty"`
	SiteID            *string          `json:"site_id,omitempty"`
	Type              string           `json:"type"`
	Quantity          decimal.Decimal  `json:"quantity"`
	Delta             decimal.Decimal  `json:"delta"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	MovementDate      time.Time       `json:"movement_date"`
	UserID            string          `json:"user_id"`
	Notes             string          `json:"notes,omitempty"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToMovementResponse convierte la entidad a su DTO de salida.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:                m.ID,
		Code:              m.Code,
		DdtID:             m.DdtID,
		ProductID:         m.ProductID,
		WarehouseID:       m.WarehouseID,
		FromWarehouseID:   m.FromWarehouseID,
		ToWarehouseID:     m.ToWarehouseID,
		SiteID:            m.SiteID,
		Type:              m.Type,
		Quantity:          m.Quantity,
		Delta:             m.Delta,
		UnitCost:          m.UnitCost,
		MovementDate:      m.MovementDate,
		UserID:            m.UserID,
		Notes:             m.Notes,
		ReferenceDocument: m.ReferenceDocument,
		CreatedAt:         m.CreatedAt,
	}
}

// DuplicateMovementDTO un par sospechoso OUTPUT / SITE_ALLOCATION.
type DuplicateMovementDTO struct {
	ProductName        string          `json:"product_name"`
	WarehouseName      string          `json:"warehouse_name"`
	SiteName           string          `json:"site_name"`
	ReferenceDocument  string          `json:"reference_document,omitempty"`
	OutputID           string          `json:"output_id"`
	OutputCode         string          `json:"output_code"`
	OutputQuantity     decimal.Decimal `json:"output_quantity"`
	AllocationID       string          `json:"allocation_id"`
	AllocationCode     string          `json:"allocation_code"`
	AllocationQuantity decimal.Decimal `json:"allocation_quantity"`
	Date               string          `json:"date"`
}

// DuplicateReportResponse reporte de pares de movimientos duplicados.
type DuplicateReportResponse struct {
	From  time.Time              `json:"from"`
	To    time.Time              `json:"to"`
	Pairs []DuplicateMovementDTO `json:"pairs"`
	Total int                    `json:"total"`
}
