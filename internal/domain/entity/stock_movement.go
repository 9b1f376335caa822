package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock. El núcleo solo crea INTAKE, OUTPUT, ADJUSTMENT y
// TRANSFER; el resto lo generan colaboradores de consulta/reportes (noleggio, cantieri).
const (
	MovementTypeINTAKE          = "INTAKE"          // carico merce (desde proveedor)
	MovementTypeOUTPUT          = "OUTPUT"          // scarico venta/entrega
	MovementTypeADJUSTMENT      = "ADJUSTMENT"      // rectificación de inventario
	MovementTypeTRANSFER        = "TRANSFER"        // traslado entre bodegas
	MovementTypeRETURN          = "RETURN"          // reso de cliente/cantiere
	MovementTypeWASTE           = "WASTE"           // scarto/pérdida
	MovementTypeRENTAL_OUT      = "RENTAL_OUT"      // noleggio - salida
	MovementTypeRENTAL_RETURN   = "RENTAL_RETURN"   // noleggio - rientro
	MovementTypeSITE_ALLOCATION = "SITE_ALLOCATION" // asignación a cantiere
	MovementTypeSITE_RETURN     = "SITE_RETURN"     // rientro de cantiere
)

// StockMovement es una fila del libro mayor de movimientos: append-only.
// Nunca se actualiza ni se borra desde el núcleo; las correcciones se expresan
// como movimientos compensatorios nuevos.
//
// Quantity guarda siempre la magnitud absoluta (para visualización y reportes).
// Delta guarda la cantidad con signo: el efecto real sobre el disponible de la
// bodega primaria (WarehouseID). En una reversión de ADJUSTMENT el signo se lee
// de Delta, no del texto de Notes.
type StockMovement struct {
	ID                string
	Code              string // generado: MOV-YYYYMMDD-NNN
	DdtID             *string
	ProductID         string
	WarehouseID       string
	FromWarehouseID   *string // solo TRANSFER y reversiones de TRANSFER
	ToWarehouseID     *string
	SiteID            *string
	Type              string
	Quantity          decimal.Decimal // magnitud absoluta, >= 0
	Delta             decimal.Decimal // efecto con signo sobre la bodega primaria
	UnitCost          decimal.Decimal
	MovementDate      time.Time
	UserID            string
	Notes             string
	ReferenceDocument string
	CreatedAt         time.Time
}

// TotalValue devuelve el valor del movimiento (cantidad * costo unitario).
func (m *StockMovement) TotalValue() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}

// IsOutgoing indica si el tipo descuenta stock de la bodega.
func IsOutgoing(movementType string) bool {
	switch movementType {
	case MovementTypeOUTPUT, MovementTypeWASTE, MovementTypeRENTAL_OUT, MovementTypeSITE_ALLOCATION:
		return true
	}
	return false
}

// IsIncoming indica si el tipo suma stock a la bodega.
func IsIncoming(movementType string) bool {
	switch movementType {
	case MovementTypeINTAKE, MovementTypeRETURN, MovementTypeRENTAL_RETURN, MovementTypeSITE_RETURN:
		return true
	}
	return false
}

// OppositeMovementType devuelve el tipo compensatorio para una reversión:
// INTAKE<->OUTPUT, TRANSFER->TRANSFER (con piernas invertidas por el caller),
// cualquier otro tipo (incluidos los no reconocidos) degrada a ADJUSTMENT.
func OppositeMovementType(movementType string) string {
	switch movementType {
	case MovementTypeINTAKE:
		return MovementTypeOUTPUT
	case MovementTypeOUTPUT:
		return MovementTypeINTAKE
	case MovementTypeTRANSFER:
		return MovementTypeTRANSFER
	default:
		return MovementTypeADJUSTMENT
	}
}
