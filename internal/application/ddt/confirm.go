package ddt

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// ConfirmDdtUseCase confirma un DDT en borrador. El caso de uso solo valida y
// cambia el estado; los movimientos de stock los genera el listener de
// ddt.confirmed (que DEBE ejecutarse antes que notificación y log, ver registry).
type ConfirmDdtUseCase struct {
	txRunner   TxRunner
	dispatcher *events.Dispatcher
}

// NewConfirmDdtUseCase construye el caso de uso.
func NewConfirmDdtUseCase(txRunner TxRunner, dispatcher *events.Dispatcher) *ConfirmDdtUseCase {
	return &ConfirmDdtUseCase{txRunner: txRunner, dispatcher: dispatcher}
}

// Execute confirma el DDT. ErrNotFound si no existe, ErrConflict si no está en
// borrador, InsufficientStockError si un renglón saliente excede la cantidad libre.
func (uc *ConfirmDdtUseCase) Execute(ctx context.Context, ddtID, userID string) error {
	if ddtID == "" {
		return domain.ErrInvalidInput
	}

	var doc *entity.Ddt
	err := uc.txRunner.RunDdt(ctx, func(
		ddtRepo repository.DdtRepository,
		invRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		var err error
		doc, err = ddtRepo.GetByID(ddtID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status != entity.DdtStatusDraft {
			return domain.ErrConflict
		}

		// Los tipos que descuentan stock verifican la cantidad libre por renglón
		// antes de confirmar. La verificación es solo lectura: el descuento real
		// lo hace el listener bajo su propio bloqueo de fila.
		if requiresStock(doc.Type) && doc.FromWarehouseID != nil {
			for _, item := range doc.Items {
				inv, err := invRepo.Get(item.ProductID, *doc.FromWarehouseID)
				if err != nil {
					return err
				}
				if inv == nil || inv.QuantityFree().LessThan(item.Quantity) {
					free := decimalZeroIfNil(inv)
					return &domain.InsufficientStockError{
						ProductID:   item.ProductID,
						WarehouseID: *doc.FromWarehouseID,
						Available:   free,
						Requested:   item.Quantity,
					}
				}
			}
		}

		doc.Status = entity.DdtStatusConfirmed
		return ddtRepo.UpdateStatus(doc.ID, entity.DdtStatusConfirmed)
	})
	if err != nil {
		return err
	}

	return uc.dispatcher.Dispatch(ctx, events.DdtConfirmed{Ddt: doc, ActorID: userID})
}

func decimalZeroIfNil(inv *entity.Inventory) decimal.Decimal {
	if inv == nil {
		return decimal.Zero
	}
	return inv.QuantityFree()
}

// requiresStock indica si el tipo de DDT descuenta stock de la bodega origen.
func requiresStock(ddtType string) bool {
	switch ddtType {
	case entity.DdtTypeOutgoing, entity.DdtTypeInternal, entity.DdtTypeRentalOut:
		return true
	}
	return false
}
