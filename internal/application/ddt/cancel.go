package ddt

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// CancelDdtUseCase cancela un DDT confirmado. La reversión de los movimientos
// generados la hace el listener de ddt.cancelled (que DEBE ejecutarse antes que
// notificación y log, ver registry).
type CancelDdtUseCase struct {
	txRunner   TxRunner
	dispatcher *events.Dispatcher
}

// NewCancelDdtUseCase construye el caso de uso.
func NewCancelDdtUseCase(txRunner TxRunner, dispatcher *events.Dispatcher) *CancelDdtUseCase {
	return &CancelDdtUseCase{txRunner: txRunner, dispatcher: dispatcher}
}

// Execute cancela el DDT. ErrNotFound si no existe, ErrConflict si no está confirmado.
func (uc *CancelDdtUseCase) Execute(ctx context.Context, ddtID, reason, userID string) error {
	if ddtID == "" {
		return domain.ErrInvalidInput
	}

	var doc *entity.Ddt
	err := uc.txRunner.RunDdt(ctx, func(
		ddtRepo repository.DdtRepository,
		_ repository.InventoryRepository,
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
		if doc.Status != entity.DdtStatusConfirmed {
			return domain.ErrConflict
		}
		doc.Status = entity.DdtStatusCancelled
		return ddtRepo.UpdateStatus(doc.ID, entity.DdtStatusCancelled)
	})
	if err != nil {
		return err
	}

	return uc.dispatcher.Dispatch(ctx, events.DdtCancelled{Ddt: doc, Reason: reason, ActorID: userID})
}
