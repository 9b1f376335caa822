package repository

import "github.com/tu-usuario/almacen-erp/internal/domain/entity"

// SiteRepository define el puerto de lectura de cantieri.
type SiteRepository interface {
	// GetByID devuelve el cantiere o nil si no existe.
	GetByID(id string) (*entity.Site, error)
}
