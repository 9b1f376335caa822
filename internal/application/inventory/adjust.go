package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// AdjustInventoryUseCase aplica una rectificación de inventario: crea el registro
// si no existe (única operación con creación perezosa), suma el delta con signo al
// disponible sin recortar en cero (un ajuste puede dejar stock negativo, corrigiendo
// un sobreconteo previo) y persiste el movimiento ADJUSTMENT en la misma transacción.
type AdjustInventoryUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	dispatcher    *events.Dispatcher
}

// NewAdjustInventoryUseCase construye el caso de uso.
func NewAdjustInventoryUseCase(txRunner TxRunner, warehouseRepo repository.WarehouseRepository, dispatcher *events.Dispatcher) *AdjustInventoryUseCase {
	return &AdjustInventoryUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo, dispatcher: dispatcher}
}

// AdjustInput entrada para un ajuste. Adjustment lleva signo; no hay validación
// que rechace ajustes que dejen el disponible negativo.
type AdjustInput struct {
	ProductID         string
	WarehouseID       string
	Adjustment        decimal.Decimal
	UnitCost          *decimal.Decimal
	Notes             string
	ReferenceDocument string
	UserID            string
}

// Execute aplica el ajuste bajo bloqueo de fila y despacha los eventos después
// del commit. Devuelve el movimiento creado.
func (uc *AdjustInventoryUseCase) Execute(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Adjustment.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var (
		inv         *entity.Inventory
		movement    *entity.StockMovement
		oldQuantity decimal.Decimal
	)

	err := uc.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		var err error
		inv, err = invRepo.GetOrCreateForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}

		oldQuantity = inv.QuantityAvailable
		inv.QuantityAvailable = oldQuantity.Add(in.Adjustment)
		inv.UpdatedAt = now
		if err := invRepo.Save(inv); err != nil {
			return err
		}

		code, err := NextMovementCode(movRepo, now)
		if err != nil {
			return err
		}
		unitCost := decimal.Zero
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		movement = &entity.StockMovement{
			ID:                uuid.New().String(),
			Code:              code,
			ProductID:         in.ProductID,
			WarehouseID:       in.WarehouseID,
			Type:              entity.MovementTypeADJUSTMENT,
			Quantity:          in.Adjustment.Abs(),
			Delta:             in.Adjustment,
			UnitCost:          unitCost,
			MovementDate:      now,
			UserID:            in.UserID,
			Notes:             adjustmentNotes(in.Adjustment, in.Notes),
			ReferenceDocument: in.ReferenceDocument,
			CreatedAt:         now,
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	// Post-commit: los listeners ya no tienen el bloqueo de fila.
	adjusted := events.InventoryAdjusted{
		Inventory:   inv,
		Movement:    movement,
		OldQuantity: oldQuantity,
		NewQuantity: inv.QuantityAvailable,
		ActorID:     in.UserID,
	}
	if err := uc.dispatcher.Dispatch(ctx, adjusted); err != nil {
		return nil, err
	}

	if inv.IsLowStock() {
		warehouse, _ := uc.warehouseRepo.GetByID(in.WarehouseID)
		low := events.InventoryLowStock{Inventory: inv, Warehouse: warehouse}
		if err := uc.dispatcher.Dispatch(ctx, low); err != nil {
			return nil, err
		}
	}

	return movement, nil
}

// adjustmentNotes antepone la dirección del ajuste en texto legible. El signo
// real vive en Delta; el texto es solo para humanos.
func adjustmentNotes(adjustment decimal.Decimal, userNotes string) string {
	direction := "Stock increase"
	if adjustment.IsNegative() {
		direction = "Stock decrease"
	}
	if strings.TrimSpace(userNotes) == "" {
		return direction
	}
	return direction + ": " + userNotes
}
