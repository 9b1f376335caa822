package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// ProductRepository define el puerto de lectura de productos/materiales.
// El CRUD completo vive en colaboradores externos; el núcleo solo resuelve relaciones.
type ProductRepository interface {
	// GetByID devuelve el producto o nil si no existe.
	GetByID(id string) (*entity.Product, error)
}
