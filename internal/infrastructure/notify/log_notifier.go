// Package notify implementa el Notifier de la aplicación. La integración con
// mail real queda fuera; este adaptador escribe los avisos al log estructurado,
// de donde los recoge el agregador de alertas de operación.
package notify

import (
	"github.com/tu-usuario/almacen-erp/internal/application/listeners"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

var _ listeners.Notifier = (*LogNotifier)(nil)

// LogNotifier emite los avisos como entradas de log con nivel Warn.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// NotifyLowStock avisa que un producto cayó bajo su stock mínimo.
func (n *LogNotifier) NotifyLowStock(inv *entity.Inventory, warehouse *entity.Warehouse) error {
	event := n.log.Warn().
		Str("notification", "low_stock").
		Str("product_id", inv.ProductID).
		Str("warehouse_id", inv.WarehouseID).
		Str("quantity_available", inv.QuantityAvailable.String())
	if inv.MinimumStock != nil {
		event = event.Str("minimum_stock", inv.MinimumStock.String())
	}
	if warehouse != nil {
		event = event.Str("warehouse_name", warehouse.Name)
	}
	event.Msg("stock bajo mínimo")
	return nil
}

// NotifyDdtStatusChanged avisa al responsable de bodega un cambio de estado de DDT.
func (n *LogNotifier) NotifyDdtStatusChanged(doc *entity.Ddt, managerID, reason string) error {
	event := n.log.Warn().
		Str("notification", "ddt_status_changed").
		Str("ddt_id", doc.ID).
		Str("ddt_code", doc.Code).
		Str("status", doc.Status).
		Str("manager_id", managerID)
	if reason != "" {
		event = event.Str("reason", reason)
	}
	event.Msg("cambio de estado de DDT")
	return nil
}
