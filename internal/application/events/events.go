package events

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
)

// Nombres de eventos de dominio. Los listeners se registran por nombre en el
// Dispatcher y se ejecutan en el orden declarado en registry.go.
const (
	InventoryAdjustedEvent            = "inventory.adjusted"
	InventoryReservedEvent            = "inventory.reserved"
	InventoryReservationReleasedEvent = "inventory.reservation_released"
	InventoryLowStockEvent            = "inventory.low_stock"
	StockMovementCreatedEvent         = "stock_movement.created"
	StockMovementReversedEvent        = "stock_movement.reversed"
	DdtConfirmedEvent                 = "ddt.confirmed"
	DdtCancelledEvent                 = "ddt.cancelled"
	WarehouseCreatedEvent             = "warehouse.created"
	WarehouseUpdatedEvent             = "warehouse.updated"
	WarehouseDeletedEvent             = "warehouse.deleted"
)

// Event es un evento de dominio despachado después del commit de la
// transacción que lo originó.
type Event interface {
	Name() string
}

// InventoryAdjusted se emite tras un ajuste de inventario.
type InventoryAdjusted struct {
	Inventory   *entity.Inventory
	Movement    *entity.StockMovement
	OldQuantity decimal.Decimal
	NewQuantity decimal.Decimal
	ActorID     string
}

func (InventoryAdjusted) Name() string { return InventoryAdjustedEvent }

// InventoryReserved se emite tras reservar stock.
type InventoryReserved struct {
	Inventory *entity.Inventory
	Quantity  decimal.Decimal
	SiteID    *string
	ActorID   string
}

func (InventoryReserved) Name() string { return InventoryReservedEvent }

// InventoryReservationReleased se emite tras liberar una reserva.
type InventoryReservationReleased struct {
	Inventory *entity.Inventory
	Quantity  decimal.Decimal
	SiteID    *string
	ActorID   string
}

func (InventoryReservationReleased) Name() string { return InventoryReservationReleasedEvent }

// InventoryLowStock se emite cuando el disponible queda en o bajo el mínimo.
type InventoryLowStock struct {
	Inventory *entity.Inventory
	Warehouse *entity.Warehouse
}

func (InventoryLowStock) Name() string { return InventoryLowStockEvent }

// StockMovementCreated se emite por cada movimiento nuevo en el libro.
type StockMovementCreated struct {
	Movement *entity.StockMovement
}

func (StockMovementCreated) Name() string { return StockMovementCreatedEvent }

// StockMovementReversed se emite tras crear el movimiento compensatorio.
type StockMovementReversed struct {
	Original *entity.StockMovement
	Reversal *entity.StockMovement
	Reason   string
	ActorID  string
}

func (StockMovementReversed) Name() string { return StockMovementReversedEvent }

// DdtConfirmed se emite al confirmar un DDT (antes de generar movimientos).
type DdtConfirmed struct {
	Ddt     *entity.Ddt
	ActorID string
}

func (DdtConfirmed) Name() string { return DdtConfirmedEvent }

// DdtCancelled se emite al cancelar un DDT confirmado.
type DdtCancelled struct {
	Ddt     *entity.Ddt
	Reason  string
	ActorID string
}

func (DdtCancelled) Name() string { return DdtCancelledEvent }

// WarehouseCreated / WarehouseUpdated / WarehouseDeleted mantienen la caché al día.
type WarehouseCreated struct{ Warehouse *entity.Warehouse }

func (WarehouseCreated) Name() string { return WarehouseCreatedEvent }

type WarehouseUpdated struct{ Warehouse *entity.Warehouse }

func (WarehouseUpdated) Name() string { return WarehouseUpdatedEvent }

type WarehouseDeleted struct{ WarehouseID string }

func (WarehouseDeleted) Name() string { return WarehouseDeletedEvent }
