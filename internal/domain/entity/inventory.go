package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory representa el estado de stock de un producto en una bodega.
// Una fila por par (producto, bodega); se crea perezosamente con cantidades en cero
// la primera vez que un ajuste toca el par. Se muta solo bajo bloqueo de fila.
//
// QuantityReserved <= QuantityAvailable es la regla de negocio, pero solo se
// verifica al momento de reservar: un ajuste posterior puede dejar el estado
// transitoriamente en violación y eso se acepta, no se repara.
type Inventory struct {
	ID                 string
	ProductID          string
	WarehouseID        string
	QuantityAvailable  decimal.Decimal // puede ser negativa por ajustes correctivos
	QuantityReserved   decimal.Decimal // >= 0
	QuantityInTransit  decimal.Decimal // >= 0
	QuantityQuarantine decimal.Decimal // >= 0
	MinimumStock       *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// QuantityFree devuelve la cantidad libre para reservar (disponible - reservada).
func (i *Inventory) QuantityFree() decimal.Decimal {
	return i.QuantityAvailable.Sub(i.QuantityReserved)
}

// IsLowStock indica si el disponible está en o por debajo del stock mínimo configurado.
func (i *Inventory) IsLowStock() bool {
	if i.MinimumStock == nil {
		return false
	}
	return i.QuantityAvailable.LessThanOrEqual(*i.MinimumStock)
}

// Reserve incrementa la reserva. El caller ya debe haber validado la cantidad libre
// bajo bloqueo de fila; aquí no se repite la verificación.
func (i *Inventory) Reserve(quantity decimal.Decimal) {
	i.QuantityReserved = i.QuantityReserved.Add(quantity)
}

// ReleaseReservation libera reserva con piso en cero: liberar más de lo reservado
// se tolera en silencio, nunca deja la reserva negativa.
func (i *Inventory) ReleaseReservation(quantity decimal.Decimal) {
	released := i.QuantityReserved.Sub(quantity)
	if released.IsNegative() {
		released = decimal.Zero
	}
	i.QuantityReserved = released
}
