package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// ReleaseReservationUseCase libera una reserva de stock. La liberación se recorta
// en cero: pedir liberar más de lo reservado se tolera en silencio.
type ReleaseReservationUseCase struct {
	txRunner   TxRunner
	dispatcher *events.Dispatcher
}

// NewReleaseReservationUseCase construye el caso de uso.
func NewReleaseReservationUseCase(txRunner TxRunner, dispatcher *events.Dispatcher) *ReleaseReservationUseCase {
	return &ReleaseReservationUseCase{txRunner: txRunner, dispatcher: dispatcher}
}

// ReleaseInput entrada para liberar reserva.
type ReleaseInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	SiteID      *string
	UserID      string
}

// Execute libera la reserva bajo bloqueo de fila. ErrNotFound si el registro no existe.
func (uc *ReleaseReservationUseCase) Execute(ctx context.Context, in ReleaseInput) error {
	if in.ProductID == "" || in.WarehouseID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}

	var inv *entity.Inventory
	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		_ repository.StockMovementRepository,
	) error {
		var err error
		inv, err = invRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}

		inv.ReleaseReservation(in.Quantity)
		inv.UpdatedAt = time.Now()
		return invRepo.Save(inv)
	})
	if err != nil {
		return err
	}

	return uc.dispatcher.Dispatch(ctx, events.InventoryReservationReleased{
		Inventory: inv,
		Quantity:  in.Quantity,
		SiteID:    in.SiteID,
		ActorID:   in.UserID,
	})
}
