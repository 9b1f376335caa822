package listeners

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// NotifyWarehouseManagerListener avisa al responsable de la bodega cuando un DDT
// se confirma o se cancela. Observacional: captura sus propios errores.
type NotifyWarehouseManagerListener struct {
	warehouseRepo repository.WarehouseRepository
	notifier      Notifier
	log           *logger.Logger
}

// NewNotifyWarehouseManagerListener construye el listener.
func NewNotifyWarehouseManagerListener(warehouseRepo repository.WarehouseRepository, notifier Notifier, log *logger.Logger) *NotifyWarehouseManagerListener {
	return &NotifyWarehouseManagerListener{warehouseRepo: warehouseRepo, notifier: notifier, log: log}
}

func (l *NotifyWarehouseManagerListener) ListenerName() string { return "notify_warehouse_manager" }

func (l *NotifyWarehouseManagerListener) Handle(_ context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.DdtConfirmed:
		l.notify(ev.Ddt, "")
	case events.DdtCancelled:
		l.notify(ev.Ddt, ev.Reason)
	}
	return nil
}

func (l *NotifyWarehouseManagerListener) notify(doc *entity.Ddt, reason string) {
	if doc.FromWarehouseID == nil {
		return
	}
	warehouse, err := l.warehouseRepo.GetByID(*doc.FromWarehouseID)
	if err != nil || warehouse == nil || warehouse.ManagerID == "" {
		return
	}
	if err := l.notifier.NotifyDdtStatusChanged(doc, warehouse.ManagerID, reason); err != nil {
		l.log.Warn().Err(err).
			Str("ddt_id", doc.ID).
			Str("warehouse_id", warehouse.ID).
			Msg("no se pudo notificar al responsable de bodega")
	}
}

// SendLowStockAlertListener envía la alerta de stock bajo al responsable.
// Observacional: captura sus propios errores.
type SendLowStockAlertListener struct {
	notifier Notifier
	log      *logger.Logger
}

// NewSendLowStockAlertListener construye el listener.
func NewSendLowStockAlertListener(notifier Notifier, log *logger.Logger) *SendLowStockAlertListener {
	return &SendLowStockAlertListener{notifier: notifier, log: log}
}

func (l *SendLowStockAlertListener) ListenerName() string { return "send_low_stock_alert" }

func (l *SendLowStockAlertListener) Handle(_ context.Context, e events.Event) error {
	ev, ok := e.(events.InventoryLowStock)
	if !ok {
		return nil
	}
	if err := l.notifier.NotifyLowStock(ev.Inventory, ev.Warehouse); err != nil {
		l.log.Warn().Err(err).
			Str("product_id", ev.Inventory.ProductID).
			Str("warehouse_id", ev.Inventory.WarehouseID).
			Msg("no se pudo enviar la alerta de stock bajo")
	}
	return nil
}
