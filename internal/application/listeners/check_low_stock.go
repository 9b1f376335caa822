package listeners

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// CheckLowStockListener verifica el nivel de stock después de cada movimiento
// saliente y emite inventory.low_stock cuando el disponible queda en o bajo el
// mínimo. Corre síncrono, inmediatamente después del movimiento.
type CheckLowStockListener struct {
	invRepo       repository.InventoryRepository
	warehouseRepo repository.WarehouseRepository
	dispatcher    *events.Dispatcher
	log           *logger.Logger
}

// NewCheckLowStockListener construye el listener.
func NewCheckLowStockListener(invRepo repository.InventoryRepository, warehouseRepo repository.WarehouseRepository, dispatcher *events.Dispatcher, log *logger.Logger) *CheckLowStockListener {
	return &CheckLowStockListener{invRepo: invRepo, warehouseRepo: warehouseRepo, dispatcher: dispatcher, log: log}
}

func (l *CheckLowStockListener) ListenerName() string { return "check_low_stock" }

func (l *CheckLowStockListener) Handle(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.StockMovementCreated)
	if !ok {
		return nil
	}
	movement := ev.Movement

	// Solo los movimientos salientes pueden dejar el stock bajo.
	if !entity.IsOutgoing(movement.Type) {
		return nil
	}

	inv, err := l.invRepo.Get(movement.ProductID, movement.WarehouseID)
	if err != nil {
		// Observacional: no rompe la cadena por una lectura fallida.
		l.log.Warn().Err(err).
			Str("product_id", movement.ProductID).
			Str("warehouse_id", movement.WarehouseID).
			Msg("no se pudo leer inventario para verificar stock bajo")
		return nil
	}
	if inv == nil || !inv.IsLowStock() {
		return nil
	}

	warehouse, _ := l.warehouseRepo.GetByID(movement.WarehouseID)
	return l.dispatcher.Dispatch(ctx, events.InventoryLowStock{Inventory: inv, Warehouse: warehouse})
}
