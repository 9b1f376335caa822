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

// ReserveInventoryUseCase reserva stock de un producto en una bodega. A diferencia
// de Adjust, exige que el registro de inventario exista: reservar sin stock previo
// es ErrNotFound, no creación perezosa.
//
// La verificación de cantidad libre y el incremento de la reserva ocurren bajo el
// mismo bloqueo de fila: es el clásico check-then-increment que sin FOR UPDATE
// dejaría pasar dos reservas concurrentes que juntas exceden el stock.
type ReserveInventoryUseCase struct {
	txRunner   TxRunner
	dispatcher *events.Dispatcher
}

// NewReserveInventoryUseCase construye el caso de uso.
func NewReserveInventoryUseCase(txRunner TxRunner, dispatcher *events.Dispatcher) *ReserveInventoryUseCase {
	return &ReserveInventoryUseCase{txRunner: txRunner, dispatcher: dispatcher}
}

// ReserveInput entrada para reservar. SiteID es contexto opcional de cantiere.
type ReserveInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	SiteID      *string
	UserID      string
}

// Execute reserva la cantidad completa o falla: no hay reserva parcial.
func (uc *ReserveInventoryUseCase) Execute(ctx context.Context, in ReserveInput) error {
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

		free := inv.QuantityFree()
		if free.LessThan(in.Quantity) {
			return &domain.InsufficientStockError{
				ProductID:   in.ProductID,
				WarehouseID: in.WarehouseID,
				Available:   free,
				Requested:   in.Quantity,
			}
		}

		inv.Reserve(in.Quantity)
		inv.UpdatedAt = time.Now()
		return invRepo.Save(inv)
	})
	if err != nil {
		return err
	}

	return uc.dispatcher.Dispatch(ctx, events.InventoryReserved{
		Inventory: inv,
		Quantity:  in.Quantity,
		SiteID:    in.SiteID,
		ActorID:   in.UserID,
	})
}
