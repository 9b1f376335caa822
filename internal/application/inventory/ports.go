package inventory

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: cualquier error dentro del callback hace Rollback completo,
// nunca persisten actualizaciones parciales de cantidades.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
