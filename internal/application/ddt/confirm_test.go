package ddt_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-erp/internal/application/ddt"
	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/listeners"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/domain"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/testutil"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas del ciclo DDT confirmar/cancelar con la cadena real de listeners:
// la confirmación genera los movimientos, la cancelación los revierte y el
// inventario vuelve al estado inicial.
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID   = "aaaaaaaa-0000-0000-0000-000000000001"
	warehouseA  = "bbbbbbbb-0000-0000-0000-00000000000a"
	warehouseB  = "bbbbbbbb-0000-0000-0000-00000000000b"
	operatorID  = "cccccccc-0000-0000-0000-000000000001"
)

type harness struct {
	invRepo  *testutil.MemoryInventoryRepo
	movRepo  *testutil.MemoryMovementRepo
	ddtRepo  *testutil.MemoryDdtRepo
	txRunner *testutil.MemoryTxRunner
	recorder *testutil.EventRecorder

	confirm *ddt.ConfirmDdtUseCase
	cancel  *ddt.CancelDdtUseCase
}

func newHarness(docs ...*entity.Ddt) *harness {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	h := &harness{
		invRepo:  testutil.NewMemoryInventoryRepo(),
		movRepo:  testutil.NewMemoryMovementRepo(),
		ddtRepo:  testutil.NewMemoryDdtRepo(docs...),
		recorder: testutil.NewEventRecorder(),
	}
	h.txRunner = testutil.NewMemoryTxRunner(h.invRepo, h.movRepo)
	h.txRunner.Ddt = h.ddtRepo

	dispatcher := events.NewDispatcher(log)
	reverseUC := stockmovement.NewReverseStockMovementUseCase(h.txRunner, dispatcher)

	// El recorder va primero para grabar cada evento antes de sus efectos.
	h.recorder.RecordAll(dispatcher)

	// Cadena real: generación en confirmed, reversión en cancelled.
	dispatcher.Register(events.DdtConfirmedEvent,
		listeners.NewGenerateDdtMovementsListener(h.txRunner, dispatcher, log))
	dispatcher.Register(events.DdtCancelledEvent,
		listeners.NewReverseDdtMovementsListener(h.movRepo, reverseUC, log))

	h.confirm = ddt.NewConfirmDdtUseCase(h.txRunner, dispatcher)
	h.cancel = ddt.NewCancelDdtUseCase(h.txRunner, dispatcher)
	return h
}

func draftDdt(id, ddtType string, from, to *string, quantities ...int64) *entity.Ddt {
	doc := &entity.Ddt{
		ID:              id,
		Code:            "DDT-2026-" + id,
		Type:            ddtType,
		Status:          entity.DdtStatusDraft,
		FromWarehouseID: from,
		ToWarehouseID:   to,
		DdtDate:         time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		CreatedBy:       operatorID,
	}
	for i, q := range quantities {
		doc.Items = append(doc.Items, entity.DdtItem{
			ID:        doc.ID + "-item-" + string(rune('a'+i)),
			DdtID:     doc.ID,
			ProductID: productID,
			Quantity:  decimal.NewFromInt(q),
			UnitCost:  decimal.NewFromInt(7),
		})
	}
	return doc
}

func TestConfirm_IncomingGeneraIntake(t *testing.T) {
	from := warehouseA
	h := newHarness(draftDdt("d1", entity.DdtTypeIncoming, &from, nil, 100))

	require.NoError(t, h.confirm.Execute(context.Background(), "d1", operatorID))

	doc, _ := h.ddtRepo.GetByID("d1")
	assert.Equal(t, entity.DdtStatusConfirmed, doc.Status)

	inv, _ := h.invRepo.Get(productID, warehouseA)
	require.NotNil(t, inv, "la confirmación crea la fila de inventario si no existe")
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(100)))

	all := h.movRepo.All()
	require.Len(t, all, 1)
	m := all[0]
	assert.Equal(t, entity.MovementTypeINTAKE, m.Type)
	assert.True(t, m.Delta.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, m.DdtID)
	assert.Equal(t, "d1", *m.DdtID)
	assert.Equal(t, doc.Code, m.ReferenceDocument)

	assert.Equal(t, []string{events.DdtConfirmedEvent, events.StockMovementCreatedEvent},
		h.recorder.Names())
}

func TestConfirm_OutgoingVerificaStock(t *testing.T) {
	from := warehouseA
	h := newHarness(draftDdt("d1", entity.DdtTypeOutgoing, &from, nil, 80))
	h.invRepo.Seed(&entity.Inventory{
		ProductID: productID, WarehouseID: warehouseA,
		QuantityAvailable: decimal.NewFromInt(100),
		QuantityReserved:  decimal.NewFromInt(30),
	})

	err := h.confirm.Execute(context.Background(), "d1", operatorID)
	require.Error(t, err, "libre es 70 y el renglón pide 80")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	doc, _ := h.ddtRepo.GetByID("d1")
	assert.Equal(t, entity.DdtStatusDraft, doc.Status, "el DDT sigue en borrador")
	assert.Empty(t, h.movRepo.All(), "no debe generarse ningún movimiento")
}

func TestConfirm_SoloBorrador(t *testing.T) {
	from := warehouseA
	doc := draftDdt("d1", entity.DdtTypeIncoming, &from, nil, 10)
	doc.Status = entity.DdtStatusConfirmed
	h := newHarness(doc)

	err := h.confirm.Execute(context.Background(), "d1", operatorID)
	assert.ErrorIs(t, err, domain.ErrConflict, "confirmar dos veces debe rechazarse")
}

func TestConfirm_InternalMueveDosBodegas(t *testing.T) {
	from, to := warehouseA, warehouseB
	h := newHarness(draftDdt("d1", entity.DdtTypeInternal, &from, &to, 40))
	h.invRepo.Seed(&entity.Inventory{
		ProductID: productID, WarehouseID: warehouseA,
		QuantityAvailable: decimal.NewFromInt(100),
	})

	require.NoError(t, h.confirm.Execute(context.Background(), "d1", operatorID))

	invA, _ := h.invRepo.Get(productID, warehouseA)
	invB, _ := h.invRepo.Get(productID, warehouseB)
	assert.True(t, invA.QuantityAvailable.Equal(decimal.NewFromInt(60)), "origen: 100-40")
	require.NotNil(t, invB, "la bodega destino se crea perezosamente")
	assert.True(t, invB.QuantityAvailable.Equal(decimal.NewFromInt(40)), "destino: 0+40")

	all := h.movRepo.All()
	require.Len(t, all, 1, "un traslado es UNA fila con ambas bodegas")
	assert.Equal(t, entity.MovementTypeTRANSFER, all[0].Type)
	require.NotNil(t, all[0].FromWarehouseID)
	require.NotNil(t, all[0].ToWarehouseID)
}

func TestCancel_RevierteMovimientos(t *testing.T) {
	from := warehouseA
	h := newHarness(draftDdt("d1", entity.DdtTypeOutgoing, &from, nil, 30, 20))
	h.invRepo.Seed(&entity.Inventory{
		ProductID: productID, WarehouseID: warehouseA,
		QuantityAvailable: decimal.NewFromInt(100),
	})
	ctx := context.Background()

	require.NoError(t, h.confirm.Execute(ctx, "d1", operatorID))
	inv, _ := h.invRepo.Get(productID, warehouseA)
	require.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(50)), "100-30-20")

	require.NoError(t, h.cancel.Execute(ctx, "d1", "bolla annullata", operatorID))

	doc, _ := h.ddtRepo.GetByID("d1")
	assert.Equal(t, entity.DdtStatusCancelled, doc.Status)

	inv, _ = h.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.Equal(decimal.NewFromInt(100)),
		"cancelar devuelve el inventario al estado previo, es %s", inv.QuantityAvailable)

	// Libro: 2 originales + 2 compensaciones, nada borrado.
	all := h.movRepo.All()
	require.Len(t, all, 4)
	revs := 0
	for _, m := range all {
		if len(m.ReferenceDocument) >= 4 && m.ReferenceDocument[:4] == "REV-" {
			revs++
		}
	}
	assert.Equal(t, 2, revs)
}

func TestCancel_SoloConfirmados(t *testing.T) {
	from := warehouseA
	h := newHarness(draftDdt("d1", entity.DdtTypeIncoming, &from, nil, 10))

	err := h.cancel.Execute(context.Background(), "d1", "x", operatorID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un borrador no tiene nada que cancelar")
}

func TestCancel_EsIdempotentePorEstado(t *testing.T) {
	from := warehouseA
	h := newHarness(draftDdt("d1", entity.DdtTypeIncoming, &from, nil, 10))
	ctx := context.Background()

	require.NoError(t, h.confirm.Execute(ctx, "d1", operatorID))
	require.NoError(t, h.cancel.Execute(ctx, "d1", "error", operatorID))

	err := h.cancel.Execute(ctx, "d1", "otra vez", operatorID)
	assert.ErrorIs(t, err, domain.ErrConflict,
		"una segunda cancelación no debe duplicar las reversiones")

	inv, _ := h.invRepo.Get(productID, warehouseA)
	assert.True(t, inv.QuantityAvailable.IsZero(), "+10 y -10: el neto es cero")
}
