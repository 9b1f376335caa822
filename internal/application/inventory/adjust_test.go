package inventory_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/inventory"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/testutil"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas del motor de ajustes: creación perezosa de la fila de inventario,
// delta con signo en el movimiento, y eventos post-commit.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testProductID   = "11111111-1111-1111-1111-111111111111"
	testWarehouseID = "22222222-2222-2222-2222-222222222222"
	testUserID      = "33333333-3333-3333-3333-333333333333"
)

type engine struct {
	invRepo       *testutil.MemoryInventoryRepo
	movRepo       *testutil.MemoryMovementRepo
	warehouseRepo *testutil.MemoryWarehouseRepo
	txRunner      *testutil.MemoryTxRunner
	dispatcher    *events.Dispatcher
	recorder      *testutil.EventRecorder

	adjust  *inventory.AdjustInventoryUseCase
	reserve *inventory.ReserveInventoryUseCase
	release *inventory.ReleaseReservationUseCase
}

func newEngine() *engine {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	e := &engine{
		invRepo:       testutil.NewMemoryInventoryRepo(),
		movRepo:       testutil.NewMemoryMovementRepo(),
		warehouseRepo: testutil.NewMemoryWarehouseRepo(),
		recorder:      testutil.NewEventRecorder(),
	}
	e.txRunner = testutil.NewMemoryTxRunner(e.invRepo, e.movRepo)
	e.dispatcher = events.NewDispatcher(log)
	e.recorder.RecordAll(e.dispatcher)
	e.adjust = inventory.NewAdjustInventoryUseCase(e.txRunner, e.warehouseRepo, e.dispatcher)
	e.reserve = inventory.NewReserveInventoryUseCase(e.txRunner, e.dispatcher)
	e.release = inventory.NewReleaseReservationUseCase(e.txRunner, e.dispatcher)
	return e
}

func TestAdjust_CreacionPerezosa(t *testing.T) {
	e := newEngine()

	movement, err := e.adjust.Execute(context.Background(), inventory.AdjustInput{
		ProductID:   testProductID,
		WarehouseID: testWarehouseID,
		Adjustment:  decimal.NewFromInt(100),
		UserID:      testUserID,
	})
	require.NoError(t, err, "ajustar sobre un par inexistente debe crear la fila")

	inv, err := e.invRepo.Get(testProductID, testWarehouseID)
	require.NoError(t, err)
	require.NotNil(t, inv, "la fila de inventario debe existir tras el ajuste")
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(100)),
		"disponible debe ser 100, es %s", inv.QuantityAvailable)

	require.NotNil(t, movement)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, movement.Type)
	assert.True(t, movement.Quantity.Equal(decimal.NewFromInt(100)), "Quantity guarda el valor absoluto")
	assert.True(t, movement.Delta.Equal(decimal.NewFromInt(100)), "Delta conserva el signo")
	assert.Contains(t, movement.Notes, "Stock increase")

	expectedCode := fmt.Sprintf("MOV-%s-001", time.Now().Format("20060102"))
	assert.Equal(t, expectedCode, movement.Code, "primer movimiento del día lleva consecutivo 001")
}

func TestAdjust_NegativoSinRecorte(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.adjust.Execute(ctx, inventory.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID,
		Adjustment: decimal.NewFromInt(10), UserID: testUserID,
	})
	require.NoError(t, err)

	// Corrige un sobreconteo: el disponible puede quedar negativo.
	movement, err := e.adjust.Execute(ctx, inventory.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID,
		Adjustment: decimal.NewFromInt(-25), Notes: "conteo físico", UserID: testUserID,
	})
	require.NoError(t, err)

	inv, _ := e.invRepo.Get(testProductID, testWarehouseID)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(-15)),
		"el ajuste no recorta en cero: disponible debe ser -15, es %s", inv.QuantityAvailable)
	assert.True(t, movement.Delta.Equal(decimal.NewFromInt(-25)))
	assert.True(t, movement.Quantity.Equal(decimal.NewFromInt(25)))
	assert.Contains(t, movement.Notes, "Stock decrease: conteo físico")
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	_, err := e.adjust.Execute(ctx, inventory.AdjustInput{
		ProductID: "", WarehouseID: testWarehouseID, Adjustment: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "producto vacío debe rechazarse")

	_, err = e.adjust.Execute(ctx, inventory.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID, Adjustment: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "ajuste cero no tiene sentido y debe rechazarse")

	assert.Empty(t, e.movRepo.All(), "un ajuste rechazado no debe dejar movimientos")
}

func TestAdjust_EventosPostCommit(t *testing.T) {
	e := newEngine()
	minimum := decimal.NewFromInt(20)
	e.invRepo.Seed(&entity.Inventory{
		ProductID:         testProductID,
		WarehouseID:       testWarehouseID,
		QuantityAvailable: decimal.NewFromInt(50),
		MinimumStock:      &minimum,
	})
	e.warehouseRepo.Create(&entity.Warehouse{ID: testWarehouseID, Code: "MAG-01", Name: "Deposito centrale"})

	_, err := e.adjust.Execute(context.Background(), inventory.AdjustInput{
		ProductID: testProductID, WarehouseID: testWarehouseID,
		Adjustment: decimal.NewFromInt(-40), UserID: testUserID,
	})
	require.NoError(t, err)

	names := e.recorder.Names()
	require.Equal(t, []string{events.InventoryAdjustedEvent, events.InventoryLowStockEvent}, names,
		"al cruzar el mínimo debe emitirse inventory.low_stock después de inventory.adjusted")

	adjusted, ok := e.recorder.Events[0].(events.InventoryAdjusted)
	require.True(t, ok)
	assert.True(t, adjusted.OldQuantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, adjusted.NewQuantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, testUserID, adjusted.ActorID)

	low, ok := e.recorder.Events[1].(events.InventoryLowStock)
	require.True(t, ok)
	require.NotNil(t, low.Warehouse, "el evento de stock bajo debe incluir la bodega")
	assert.Equal(t, "Deposito centrale", low.Warehouse.Name)
}

func TestAdjust_ConsecutivoDiario(t *testing.T) {
	e := newEngine()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		m, err := e.adjust.Execute(ctx, inventory.AdjustInput{
			ProductID: testProductID, WarehouseID: testWarehouseID,
			Adjustment: decimal.NewFromInt(int64(i)), UserID: testUserID,
		})
		require.NoError(t, err)
		expected := fmt.Sprintf("MOV-%s-%03d", time.Now().Format("20060102"), i)
		assert.Equal(t, expected, m.Code)
	}
}
