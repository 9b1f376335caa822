package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o material del almacén.
// StandardCost se usa para valorizar movimientos cuando el caller no indica costo.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Description  string
	UnitMeasure  string
	StandardCost decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
