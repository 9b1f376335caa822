package stockmovement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/testutil"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas de la reversión de movimientos: compensación por fila nueva,
// inmutabilidad del original, dirección correcta por tipo y por signo de Delta.
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID    = "aaaaaaaa-0000-0000-0000-000000000001"
	warehouseA   = "bbbbbbbb-0000-0000-0000-00000000000a"
	warehouseB   = "bbbbbbbb-0000-0000-0000-00000000000b"
	reverserUser = "cccccccc-0000-0000-0000-000000000001"
)

type fixture struct {
	invRepo  *testutil.MemoryInventoryRepo
	movRepo  *testutil.MemoryMovementRepo
	txRunner *testutil.MemoryTxRunner
	recorder *testutil.EventRecorder
	reverse  *stockmovement.ReverseStockMovementUseCase
}

func newFixture() *fixture {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f := &fixture{
		invRepo:  testutil.NewMemoryInventoryRepo(),
		movRepo:  testutil.NewMemoryMovementRepo(),
		recorder: testutil.NewEventRecorder(),
	}
	f.txRunner = testutil.NewMemoryTxRunner(f.invRepo, f.movRepo)
	dispatcher := events.NewDispatcher(log)
	f.recorder.RecordAll(dispatcher)
	f.reverse = stockmovement.NewReverseStockMovementUseCase(f.txRunner, dispatcher)
	return f
}

func (f *fixture) seedInventory(warehouseID string, available int64) {
	f.invRepo.Seed(&entity.Inventory{
		ProductID: productID, WarehouseID: warehouseID,
		QuantityAvailable: decimal.NewFromInt(available),
	})
}

func (f *fixture) seedMovement(m *entity.StockMovement) *entity.StockMovement {
	if m.ProductID == "" {
		m.ProductID = productID
	}
	if m.MovementDate.IsZero() {
		m.MovementDate = time.Now()
	}
	_ = f.movRepo.Create(m)
	return m
}

func TestReverse_MovimientoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.reverse.Execute(context.Background(), "no-existe", "motivo", reverserUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReverse_Intake(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 100)
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20260830-001", WarehouseID: warehouseA,
		Type: entity.MovementTypeINTAKE,
		Quantity: decimal.NewFromInt(40), Delta: decimal.NewFromInt(40),
	})

	reversal, err := f.reverse.Execute(context.Background(), original.ID, "error de captura", reverserUser)
	require.NoError(t, err)

	inv, _ := f.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(60)),
		"revertir una entrada resta la cantidad: 100-40=60, es %s", inv.QuantityAvailable)

	assert.Equal(t, entity.MovementTypeOUTPUT, reversal.Type, "la compensación de INTAKE es OUTPUT")
	assert.True(t, reversal.Delta.Equal(decimal.NewFromInt(-40)))
	assert.Equal(t, "REV-MOV-20260830-001", reversal.ReferenceDocument)
	assert.Contains(t, reversal.Notes, "Reversal of movement MOV-20260830-001")
	assert.Contains(t, reversal.Notes, "error de captura")

	// El original queda intacto en el libro.
	stored, _ := f.movRepo.GetByID(original.ID)
	assert.Equal(t, entity.MovementTypeINTAKE, stored.Type)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(40)))
}

func TestReverse_AjustePorSignoDeDelta(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 30)

	// Ajuste negativo: Delta=-20. Revertirlo debe DEVOLVER 20.
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20260830-002", WarehouseID: warehouseA,
		Type: entity.MovementTypeADJUSTMENT,
		Quantity: decimal.NewFromInt(20), Delta: decimal.NewFromInt(-20),
		Notes: "Stock decrease: conteo",
	})

	_, err := f.reverse.Execute(context.Background(), original.ID, "conteo repetido", reverserUser)
	require.NoError(t, err)

	inv, _ := f.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(50)),
		"la dirección sale del signo de Delta, no del texto: 30+20=50, es %s", inv.QuantityAvailable)
}

func TestReverse_AjusteLegadoSinDelta(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 30)

	// Fila anterior al campo Delta: delta cero, la dirección vive en Notes.
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20250101-001", WarehouseID: warehouseA,
		Type: entity.MovementTypeADJUSTMENT,
		Quantity: decimal.NewFromInt(10), Delta: decimal.Zero,
		Notes: "Stock increase: carga inicial",
	})

	_, err := f.reverse.Execute(context.Background(), original.ID, "duplicado", reverserUser)
	require.NoError(t, err)

	inv, _ := f.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(20)),
		"heurístico legado: 'increase' en Notes implica restar al revertir: 30-10=20, es %s", inv.QuantityAvailable)
}

func TestReverse_AjusteLegadoDecrease(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 30)

	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20250101-002", WarehouseID: warehouseA,
		Type: entity.MovementTypeADJUSTMENT,
		Quantity: decimal.NewFromInt(10), Delta: decimal.Zero,
		Notes: "Stock decrease: merma detectada",
	})

	_, err := f.reverse.Execute(context.Background(), original.ID, "conteo erróneo", reverserUser)
	require.NoError(t, err)

	inv, _ := f.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(40)),
		"heurístico legado: sin 'increase' en Notes se devuelve el stock: 30+10=40, es %s", inv.QuantityAvailable)
}

func TestReverse_Transfer(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 10)
	f.seedInventory(warehouseB, 90)
	fromID, toID := warehouseA, warehouseB
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20260830-003", WarehouseID: warehouseA,
		FromWarehouseID: &fromID, ToWarehouseID: &toID,
		Type:     entity.MovementTypeTRANSFER,
		Quantity: decimal.NewFromInt(25), Delta: decimal.NewFromInt(-25),
	})

	reversal, err := f.reverse.Execute(context.Background(), original.ID, "camión devuelto", reverserUser)
	require.NoError(t, err)

	invA, _ := f.invRepo.Get(productID, warehouseA)
	invB, _ := f.invRepo.Get(productID, warehouseB)
	assert.True(t, invA.QuantityAvailable.Equal(decimal.NewFromInt(35)),
		"la bodega origen recupera la cantidad: 10+25=35, es %s", invA.QuantityAvailable)
	assert.True(t, invB.QuantityAvailable.Equal(decimal.NewFromInt(65)),
		"la bodega destino la pierde: 90-25=65, es %s", invB.QuantityAvailable)

	assert.Equal(t, entity.MovementTypeTRANSFER, reversal.Type, "la compensación de un traslado es otro traslado")
	require.NotNil(t, reversal.FromWarehouseID)
	require.NotNil(t, reversal.ToWarehouseID)
	assert.Equal(t, toID, *reversal.FromWarehouseID, "dirección invertida")
	assert.Equal(t, fromID, *reversal.ToWarehouseID)
}

func TestReverse_SinInventarioEsNotFoundYNadaPersiste(t *testing.T) {
	f := newFixture()
	// Sin fila de inventario: la reversión no crea inventario.
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20260830-004", WarehouseID: warehouseA,
		Type: entity.MovementTypeOUTPUT,
		Quantity: decimal.NewFromInt(5), Delta: decimal.NewFromInt(-5),
	})

	_, err := f.reverse.Execute(context.Background(), original.ID, "x", reverserUser)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, f.movRepo.All(), 1, "la compensación no debe persistirse si la transacción falla")
	assert.Empty(t, f.recorder.Names(), "sin commit no hay eventos")
}

func TestReverse_EmiteEvento(t *testing.T) {
	f := newFixture()
	f.seedInventory(warehouseA, 100)
	original := f.seedMovement(&entity.StockMovement{
		Code: "MOV-20260830-005", WarehouseID: warehouseA,
		Type: entity.MovementTypeOUTPUT,
		Quantity: decimal.NewFromInt(10), Delta: decimal.NewFromInt(-10),
	})

	reversal, err := f.reverse.Execute(context.Background(), original.ID, "pedido cancelado", reverserUser)
	require.NoError(t, err)

	require.Equal(t, []string{events.StockMovementReversedEvent}, f.recorder.Names())
	ev, ok := f.recorder.Events[0].(events.StockMovementReversed)
	require.True(t, ok)
	assert.Equal(t, original.ID, ev.Original.ID)
	assert.Equal(t, reversal.ID, ev.Reversal.ID)
	assert.Equal(t, "pedido cancelado", ev.Reason)
	assert.Equal(t, reverserUser, ev.ActorID)
}
