package listeners

import (
	"github.com/tu-usuario/almacen-erp/internal/application/events"
)

// Deps agrupa los listeners ya construidos para el registro.
type Deps struct {
	GenerateDdtMovements *GenerateDdtMovementsListener
	ReverseDdtMovements  *ReverseDdtMovementsListener
	CheckLowStock        *CheckLowStockListener
	LogStockMovement     *LogStockMovementListener
	LogInventory         *LogInventoryActivityListener
	LogDdt               *LogDdtActivityListener
	NotifyManager        *NotifyWarehouseManagerListener
	SendLowStockAlert    *SendLowStockAlertListener
	UpdateWarehouseCache *UpdateWarehouseCacheListener
}

// Register declara la lista ordenada de listeners de cada evento.
//
// El orden de cada lista ES el contrato: los listeners se ejecutan en secuencia
// y los posteriores dependen de los efectos de los anteriores. No convertir esto
// en un registro sin orden.
func Register(d *events.Dispatcher, deps Deps) {
	// Bodegas: la caché se actualiza en cada cambio.
	d.Register(events.WarehouseCreatedEvent, deps.UpdateWarehouseCache)
	d.Register(events.WarehouseUpdatedEvent, deps.UpdateWarehouseCache)
	d.Register(events.WarehouseDeletedEvent, deps.UpdateWarehouseCache)

	// Inventario.
	d.Register(events.InventoryAdjustedEvent, deps.LogInventory)
	d.Register(events.InventoryReservedEvent, deps.LogInventory)
	d.Register(events.InventoryReservationReleasedEvent, deps.LogInventory)
	d.Register(events.InventoryLowStockEvent, deps.SendLowStockAlert)

	// Movimientos: primero la verificación de stock bajo (puede emitir
	// inventory.low_stock), después el log.
	d.Register(events.StockMovementCreatedEvent,
		deps.CheckLowStock,
		deps.LogStockMovement,
	)
	d.Register(events.StockMovementReversedEvent, deps.LogStockMovement)

	// DDT confirmado: la generación de movimientos DEBE correr primero; la
	// notificación al responsable y el log de actividad reportan los movimientos
	// que ella crea.
	d.Register(events.DdtConfirmedEvent,
		deps.GenerateDdtMovements,
		deps.NotifyManager,
		deps.LogDdt,
	)

	// DDT cancelado: la reversión DEBE correr primero, por la misma razón.
	d.Register(events.DdtCancelledEvent,
		deps.ReverseDdtMovements,
		deps.NotifyManager,
		deps.LogDdt,
	)
}
