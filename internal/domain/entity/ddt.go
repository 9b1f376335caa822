package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de DDT (documento di trasporto / nota de entrega).
const (
	DdtTypeIncoming     = "incoming"      // desde proveedor: genera INTAKE
	DdtTypeOutgoing     = "outgoing"      // hacia cliente/cantiere: genera OUTPUT
	DdtTypeInternal     = "internal"      // entre bodegas: genera TRANSFER
	DdtTypeRentalOut    = "rental_out"    // noleggio salida: genera RENTAL_OUT
	DdtTypeRentalReturn = "rental_return" // noleggio rientro: genera RENTAL_RETURN
)

// Estados de DDT. Los movimientos de stock se generan al confirmar
// y se revierten al cancelar.
const (
	DdtStatusDraft     = "draft"
	DdtStatusConfirmed = "confirmed"
	DdtStatusCancelled = "cancelled"
	DdtStatusDelivered = "delivered"
)

// Ddt representa una nota de entrega con sus renglones.
type Ddt struct {
	ID              string
	Code            string
	Type            string
	Status          string
	FromWarehouseID *string
	ToWarehouseID   *string
	SiteID          *string
	SupplierID      *string
	DdtNumber       string // número del documento del proveedor
	DdtDate         time.Time
	Notes           string
	CreatedBy       string
	Items           []DdtItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DdtItem es un renglón del DDT.
type DdtItem struct {
	ID        string
	DdtID     string
	ProductID string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}
