package repository

import (
	"time"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	// GetByID devuelve el movimiento o nil si no existe.
	GetByID(id string) (*entity.StockMovement, error)
	ListByDdt(ddtID string) ([]*entity.StockMovement, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// ListByTypes devuelve los movimientos de los tipos dados en el rango, ordenados
	// por ID ascendente. Lo usa el detector de duplicados.
	ListByTypes(types []string, from, to *time.Time) ([]*entity.StockMovement, error)
	// CountByDate cuenta los movimientos creados el día calendario dado (para el
	// consecutivo del código MOV-YYYYMMDD-NNN).
	CountByDate(day time.Time) (int, error)
}
