package listeners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// GenerateDdtMovementsListener genera los movimientos de stock al confirmarse un
// DDT. Listener CRÍTICO: debe ser el primero de la lista de ddt.confirmed porque
// la notificación al responsable y el log de actividad reportan los movimientos
// que este listener crea. Sus errores se propagan y abortan la cadena.
//
// Corre después del commit de la confirmación, así que abre su propia transacción.
type GenerateDdtMovementsListener struct {
	txRunner   inventory.TxRunner
	dispatcher *events.Dispatcher
	log        *logger.Logger
}

// NewGenerateDdtMovementsListener construye el listener.
func NewGenerateDdtMovementsListener(txRunner inventory.TxRunner, dispatcher *events.Dispatcher, log *logger.Logger) *GenerateDdtMovementsListener {
	return &GenerateDdtMovementsListener{txRunner: txRunner, dispatcher: dispatcher, log: log}
}

func (l *GenerateDdtMovementsListener) ListenerName() string { return "generate_ddt_movements" }

// Handle crea un movimiento por renglón del DDT y actualiza el inventario en la
// misma transacción; después del commit emite stock_movement.created por cada uno.
func (l *GenerateDdtMovementsListener) Handle(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.DdtConfirmed)
	if !ok {
		return nil
	}
	doc := ev.Ddt

	var created []*entity.StockMovement
	err := l.txRunner.Run(ctx, func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error {
		for _, item := range doc.Items {
			movement, err := l.generateForItem(invRepo, movRepo, doc, item)
			if err != nil {
				return err
			}
			created = append(created, movement)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("generar movimientos del DDT %s: %w", doc.Code, err)
	}

	l.log.Info().
		Str("ddt_id", doc.ID).
		Str("ddt_code", doc.Code).
		Str("type", doc.Type).
		Int("movements", len(created)).
		Msg("movimientos de stock generados para DDT")

	for _, m := range created {
		if err := l.dispatcher.Dispatch(ctx, events.StockMovementCreated{Movement: m}); err != nil {
			return err
		}
	}
	return nil
}

// generateForItem crea el movimiento y aplica el efecto según el tipo de DDT.
func (l *GenerateDdtMovementsListener) generateForItem(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
	doc *entity.Ddt,
	item entity.DdtItem,
) (*entity.StockMovement, error) {
	if doc.FromWarehouseID == nil {
		return nil, domain.ErrInvalidInput
	}
	warehouseID := *doc.FromWarehouseID

	var (
		movementType string
		delta        decimal.Decimal
	)
	switch doc.Type {
	case entity.DdtTypeIncoming:
		movementType = entity.MovementTypeINTAKE
		delta = item.Quantity
	case entity.DdtTypeOutgoing:
		movementType = entity.MovementTypeOUTPUT
		delta = item.Quantity.Neg()
	case entity.DdtTypeInternal:
		movementType = entity.MovementTypeTRANSFER
		delta = item.Quantity.Neg()
	case entity.DdtTypeRentalOut:
		movementType = entity.MovementTypeRENTAL_OUT
		delta = item.Quantity.Neg()
	case entity.DdtTypeRentalReturn:
		movementType = entity.MovementTypeRENTAL_RETURN
		delta = item.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	// Efecto sobre la bodega primaria; un traslado interno toca además la destino.
	if err := applyDelta(invRepo, item.ProductID, warehouseID, delta); err != nil {
		return nil, err
	}
	if doc.Type == entity.DdtTypeInternal {
		if doc.ToWarehouseID == nil {
			return nil, domain.ErrInvalidInput
		}
		if err := applyDelta(invRepo, item.ProductID, *doc.ToWarehouseID, item.Quantity); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	code, err := inventory.NextMovementCode(movRepo, now)
	if err != nil {
		return nil, err
	}
	ddtID := doc.ID
	movement := &entity.StockMovement{
		ID:                uuid.New().String(),
		Code:              code,
		DdtID:             &ddtID,
		ProductID:         item.ProductID,
		WarehouseID:       warehouseID,
		SiteID:            doc.SiteID,
		Type:              movementType,
		Quantity:          item.Quantity,
		Delta:             delta,
		UnitCost:          item.UnitCost,
		MovementDate:      doc.DdtDate,
		UserID:            doc.CreatedBy,
		Notes:             fmt.Sprintf("DDT %s: %s", doc.Type, doc.Code),
		ReferenceDocument: doc.Code,
		CreatedAt:         now,
	}
	if doc.Type == entity.DdtTypeInternal {
		movement.FromWarehouseID = doc.FromWarehouseID
		movement.ToWarehouseID = doc.ToWarehouseID
	}
	if err := movRepo.Create(movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// applyDelta suma delta al disponible del par (producto, bodega) bajo bloqueo,
// creando el registro en cero si es la primera mutación del par.
func applyDelta(invRepo repository.InventoryRepository, productID, warehouseID string, delta decimal.Decimal) error {
	inv, err := invRepo.GetOrCreateForUpdate(productID, warehouseID)
	if err != nil {
		return err
	}
	inv.QuantityAvailable = inv.QuantityAvailable.Add(delta)
	inv.UpdatedAt = time.Now()
	return invRepo.Save(inv)
}
