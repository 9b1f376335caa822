package listeners

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// Notifier envía avisos a usuarios (stock bajo, cambios de estado de DDT).
// El transporte (mail, chat) es un colaborador externo; aquí solo el contrato.
type Notifier interface {
	NotifyLowStock(inv *entity.Inventory, warehouse *entity.Warehouse) error
	NotifyDdtStatusChanged(doc *entity.Ddt, managerID, reason string) error
}

// WarehouseCache mantiene la caché de bodegas (Redis en producción).
type WarehouseCache interface {
	Set(warehouse *entity.Warehouse) error
	Invalidate(warehouseID string) error
}
