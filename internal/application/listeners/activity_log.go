package listeners

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// LogStockMovementListener registra en el log de actividad cada movimiento
// creado o revertido. Observacional: nunca devuelve error.
type LogStockMovementListener struct {
	log *logger.Logger
}

// NewLogStockMovementListener construye el listener.
func NewLogStockMovementListener(log *logger.Logger) *LogStockMovementListener {
	return &LogStockMovementListener{log: log}
}

func (l *LogStockMovementListener) ListenerName() string { return "log_stock_movement" }

func (l *LogStockMovementListener) Handle(_ context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.StockMovementCreated:
		l.log.Info().
			Str("movement_id", ev.Movement.ID).
			Str("code", ev.Movement.Code).
			Str("type", ev.Movement.Type).
			Str("product_id", ev.Movement.ProductID).
			Str("warehouse_id", ev.Movement.WarehouseID).
			Str("quantity", ev.Movement.Quantity.String()).
			Str("delta", ev.Movement.Delta.String()).
			Msg("movimiento de stock creado")
	case events.StockMovementReversed:
		l.log.Info().
			Str("original_code", ev.Original.Code).
			Str("reversal_code", ev.Reversal.Code).
			Str("reason", ev.Reason).
			Str("actor_id", ev.ActorID).
			Msg("movimiento de stock revertido")
	}
	return nil
}

// LogInventoryActivityListener audita ajustes, reservas y liberaciones.
// Observacional: nunca devuelve error.
type LogInventoryActivityListener struct {
	log *logger.Logger
}

// NewLogInventoryActivityListener construye el listener.
func NewLogInventoryActivityListener(log *logger.Logger) *LogInventoryActivityListener {
	return &LogInventoryActivityListener{log: log}
}

func (l *LogInventoryActivityListener) ListenerName() string { return "log_inventory_activity" }

func (l *LogInventoryActivityListener) Handle(_ context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.InventoryAdjusted:
		l.log.Info().
			Str("product_id", ev.Inventory.ProductID).
			Str("warehouse_id", ev.Inventory.WarehouseID).
			Str("old_quantity", ev.OldQuantity.String()).
			Str("new_quantity", ev.NewQuantity.String()).
			Str("movement_code", ev.Movement.Code).
			Str("actor_id", ev.ActorID).
			Msg("inventario ajustado")
	case events.InventoryReserved:
		l.log.Info().
			Str("product_id", ev.Inventory.ProductID).
			Str("warehouse_id", ev.Inventory.WarehouseID).
			Str("quantity", ev.Quantity.String()).
			Str("actor_id", ev.ActorID).
			Msg("stock reservado")
	case events.InventoryReservationReleased:
		l.log.Info().
			Str("product_id", ev.Inventory.ProductID).
			Str("warehouse_id", ev.Inventory.WarehouseID).
			Str("quantity", ev.Quantity.String()).
			Str("actor_id", ev.ActorID).
			Msg("reserva liberada")
	}
	return nil
}

// LogDdtActivityListener audita el ciclo de vida de los DDT.
// Observacional: nunca devuelve error.
type LogDdtActivityListener struct {
	log *logger.Logger
}

// NewLogDdtActivityListener construye el listener.
func NewLogDdtActivityListener(log *logger.Logger) *LogDdtActivityListener {
	return &LogDdtActivityListener{log: log}
}

func (l *LogDdtActivityListener) ListenerName() string { return "log_ddt_activity" }

func (l *LogDdtActivityListener) Handle(_ context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.DdtConfirmed:
		l.log.Info().
			Str("ddt_id", ev.Ddt.ID).
			Str("ddt_code", ev.Ddt.Code).
			Str("actor_id", ev.ActorID).
			Msg("DDT confirmado")
	case events.DdtCancelled:
		l.log.Info().
			Str("ddt_id", ev.Ddt.ID).
			Str("ddt_code", ev.Ddt.Code).
			Str("reason", ev.Reason).
			Str("actor_id", ev.ActorID).
			Msg("DDT cancelado")
	}
	return nil
}
