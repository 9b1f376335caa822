package stockmovement

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// ReverseStockMovementUseCase crea un movimiento compensatorio para un movimiento
// existente y deshace su efecto sobre el inventario. Es el camino canónico de
// reversión: el listener de cancelación de DDT delega aquí en lugar de duplicar
// las reglas de inversión.
//
// El movimiento original nunca se modifica: la corrección es siempre una fila nueva.
type ReverseStockMovementUseCase struct {
	txRunner   inventory.TxRunner
	dispatcher *events.Dispatcher
}

// NewReverseStockMovementUseCase construye el caso de uso.
func NewReverseStockMovementUseCase(txRunner inventory.TxRunner, dispatcher *events.Dispatcher) *ReverseStockMovementUseCase {
	return &ReverseStockMovementUseCase{txRunner: txRunner, dispatcher: dispatcher}
}

// Execute revierte el movimiento indicado. ErrNotFound si el movimiento no existe
// o si falta la fila de inventario de alguna bodega tocada.
func (uc *ReverseStockMovementUseCase) Execute(ctx context.Context, movementID, reason, userID string) (*entity.StockMovement, error) {
	if movementID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var original, reversal *entity.StockMovement

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		original, err = movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrNotFound
		}

		if err := uc.applyInverseEffect(invRepo, original, now); err != nil {
			return err
		}

		code, err := inventory.NextMovementCode(movRepo, now)
		if err != nil {
			return err
		}
		reversal = &entity.StockMovement{
			ID:                uuid.New().String(),
			Code:              code,
			DdtID:             original.DdtID,
			ProductID:         original.ProductID,
			WarehouseID:       original.WarehouseID,
			FromWarehouseID:   original.ToWarehouseID, // dirección invertida
			ToWarehouseID:     original.FromWarehouseID,
			SiteID:            original.SiteID,
			Type:              entity.OppositeMovementType(original.Type),
			Quantity:          original.Quantity,
			Delta:             original.Delta.Neg(),
			UnitCost:          original.UnitCost,
			MovementDate:      now,
			UserID:            userID,
			Notes:             fmt.Sprintf("Reversal of movement %s. Reason: %s", original.Code, reason),
			ReferenceDocument: "REV-" + original.Code,
			CreatedAt:         now,
		}
		return movRepo.Create(reversal)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.dispatcher.Dispatch(ctx, events.StockMovementReversed{
		Original: original,
		Reversal: reversal,
		Reason:   reason,
		ActorID:  userID,
	}); err != nil {
		return nil, err
	}
	return reversal, nil
}

// applyInverseEffect deshace el efecto del movimiento original sobre las filas
// de inventario, todas bajo bloqueo de fila dentro de la transacción en curso.
func (uc *ReverseStockMovementUseCase) applyInverseEffect(invRepo repository.InventoryRepository, original *entity.StockMovement, now time.Time) error {
	switch original.Type {
	case entity.MovementTypeINTAKE:
		// La entrada sumó stock: la reversión lo resta.
		return addAvailable(invRepo, original.ProductID, original.WarehouseID, original.Quantity.Neg(), now)

	case entity.MovementTypeOUTPUT:
		// La salida restó stock: la reversión lo devuelve.
		return addAvailable(invRepo, original.ProductID, original.WarehouseID, original.Quantity, now)

	case entity.MovementTypeTRANSFER:
		return uc.reverseTransfer(invRepo, original, now)

	default:
		return uc.reverseAdjustment(invRepo, original, now)
	}
}

// reverseTransfer devuelve la cantidad a la bodega origen y la resta de la destino.
// Cada pierna es independiente según qué IDs estén poblados. Para evitar deadlocks
// entre dos reversiones que tocan las mismas bodegas en orden opuesto, las filas
// se bloquean siempre en orden ascendente de ID de bodega.
func (uc *ReverseStockMovementUseCase) reverseTransfer(invRepo repository.InventoryRepository, original *entity.StockMovement, now time.Time) error {
	type leg struct {
		warehouseID string
		delta       decimal.Decimal
	}
	var legs []leg
	if original.FromWarehouseID != nil {
		legs = append(legs, leg{*original.FromWarehouseID, original.Quantity})
	}
	if original.ToWarehouseID != nil {
		legs = append(legs, leg{*original.ToWarehouseID, original.Quantity.Neg()})
	}
	sort.Slice(legs, func(i, j int) bool { return legs[i].warehouseID < legs[j].warehouseID })

	for _, l := range legs {
		if err := addAvailable(invRepo, original.ProductID, l.warehouseID, l.delta, now); err != nil {
			return err
		}
	}
	return nil
}

// reverseAdjustment decide la dirección leyendo el signo almacenado en Delta.
// Filas anteriores al campo Delta (delta cero con cantidad no nula) caen al
// heurístico histórico sobre el texto de Notes.
func (uc *ReverseStockMovementUseCase) reverseAdjustment(invRepo repository.InventoryRepository, original *entity.StockMovement, now time.Time) error {
	wasPositive := original.Delta.IsPositive()
	if original.Delta.IsZero() && !original.Quantity.IsZero() {
		wasPositive = strings.Contains(original.Notes, "increase")
	}

	delta := original.Quantity
	if wasPositive {
		delta = delta.Neg()
	}
	return addAvailable(invRepo, original.ProductID, original.WarehouseID, delta, now)
}

// addAvailable suma delta al disponible de la fila (producto, bodega) bajo
// bloqueo. ErrNotFound si la fila no existe: la reversión no crea inventario.
func addAvailable(invRepo repository.InventoryRepository, productID, warehouseID string, delta decimal.Decimal, now time.Time) error {
	inv, err := invRepo.GetForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrNotFound
	}
	inv.QuantityAvailable = inv.QuantityAvailable.Add(delta)
	inv.UpdatedAt = now
	return invRepo.Save(inv)
}
