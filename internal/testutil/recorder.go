package testutil

import (
	"context"
	"sync"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
)

// EventRecorder es un listener que acumula los eventos que recibe, en orden.
// Sirve para verificar qué despachó un caso de uso y en qué secuencia.
type EventRecorder struct {
	mu     sync.Mutex
	Events []events.Event
}

func NewEventRecorder() *EventRecorder {
	return &EventRecorder{}
}

func (r *EventRecorder) ListenerName() string { return "test_recorder" }

func (r *EventRecorder) Handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, e)
	return nil
}

// Names devuelve los nombres de los eventos grabados, en orden.
func (r *EventRecorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Name())
	}
	return out
}

// RecordAll registra el recorder para todos los eventos conocidos.
func (r *EventRecorder) RecordAll(d *events.Dispatcher) {
	for _, name := range []string{
		events.InventoryAdjustedEvent,
		events.InventoryReservedEvent,
		events.InventoryReservationReleasedEvent,
		events.InventoryLowStockEvent,
		events.StockMovementCreatedEvent,
		events.StockMovementReversedEvent,
		events.DdtConfirmedEvent,
		events.DdtCancelledEvent,
		events.WarehouseCreatedEvent,
		events.WarehouseUpdatedEvent,
		events.WarehouseDeletedEvent,
	} {
		d.Register(name, r)
	}
}
