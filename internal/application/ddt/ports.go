package ddt

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repositorios
// de DDT e inventario atados a esa tx.
type TxRunner interface {
	RunDdt(ctx context.Context, fn func(
		ddtRepo repository.DdtRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
