package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// DdtRepository define el puerto de persistencia de DDT con sus renglones.
type DdtRepository interface {
	// GetByID devuelve el DDT con Items cargados, o nil si no existe.
	GetByID(id string) (*entity.Ddt, error)
	// UpdateStatus cambia el estado del DDT (draft -> confirmed -> cancelled/delivered).
	UpdateStatus(id, status string) error
}
