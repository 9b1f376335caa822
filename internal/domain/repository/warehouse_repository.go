package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// WarehouseRepository define el puerto CRUD para bodegas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	// GetByID devuelve la bodega o nil si no existe.
	GetByID(id string) (*entity.Warehouse, error)
	List(limit, offset int) ([]*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	Delete(id string) error
}
