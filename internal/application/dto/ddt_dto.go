package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
)

// CancelDdtRequest body para POST /api/ddt/:id/cancel.
type CancelDdtRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=500"`
}

// DdtItemResponse línea de un DDT.
type DdtItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// DdtResponse salida de un documento de transporte.
type DdtResponse struct {
	ID              string            `json:"id"`
	Code            string            `json:"code"`
	Type            string            `json:"type"`
	Status          string            `json:"status"`
	FromWarehouseID *string           `json:"from_warehouse_id,omitempty"`
	ToWarehouseID   *string           `json:"to_warehouse_id,omitempty"`
	SiteID          *string           `json:"site_id,omitempty"`
	SupplierID      *string           `json:"supplier_id,omitempty"`
	DdtNumber       string            `json:"ddt_number,omitempty"`
	DdtDate         time.Time         `json:"ddt_date"`
	Notes           string            `json:"notes,omitempty"`
	CreatedBy       string            `json:"created_by"`
	Items           []DdtItemResponse `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// ToDdtResponse convierte la entidad a su DTO de salida.
func ToDdtResponse(d *entity.Ddt) *DdtResponse {
	if d == nil {
		return nil
	}
	items := make([]DdtItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, DdtItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}
	return &DdtResponse{
		ID:              d.ID,
		Code:            d.Code,
		Type:            d.Type,
		Status:          d.Status,
		FromWarehouseID: d.FromWarehouseID,
		ToWarehouseID:   d.ToWarehouseID,
		SiteID:          d.SiteID,
		SupplierID:      d.SupplierID,
		DdtNumber:       d.DdtNumber,
		DdtDate:         d.DdtDate,
		Notes:           d.Notes,
		CreatedBy:       d.CreatedBy,
		Items:           items,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
