package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// InventoryRepository define el puerto para el registro de inventario por (producto, bodega).
// Las variantes ForUpdate bloquean la fila (SELECT FOR UPDATE) y solo tienen sentido
// dentro de una transacción; el bloqueo se mantiene hasta el Commit/Rollback.
type InventoryRepository interface {
	// Get devuelve el registro o nil si el par no existe.
	Get(productID, warehouseID string) (*entity.Inventory, error)
	// GetForUpdate bloquea la fila y la devuelve, o nil si el par no existe.
	GetForUpdate(productID, warehouseID string) (*entity.Inventory, error)
	// GetOrCreateForUpdate crea el registro con cantidades en cero si no existe
	// y devuelve la fila bloqueada. Solo Adjust usa la creación perezosa.
	GetOrCreateForUpdate(productID, warehouseID string) (*entity.Inventory, error)
	// Save persiste las cantidades del registro (upsert por producto+bodega).
	Save(inv *entity.Inventory) error
}
