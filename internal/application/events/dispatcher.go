package events

import (
	"context"
	"fmt"

	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// Listener reacciona a un evento. Handle devuelve error para abortar la cadena;
// los listeners puramente observacionales (log, caché, notificación) capturan y
// loguean sus propios errores para no romperla.
type Listener interface {
	// ListenerName identifica al listener en logs y errores.
	ListenerName() string
	Handle(ctx context.Context, e Event) error
}

// Dispatcher despacha eventos de dominio de forma síncrona y en proceso.
// No es una cola: por cada evento ejecuta su lista de listeners estrictamente
// en el orden de registro, porque listeners posteriores dependen de los efectos
// de los anteriores. El primer error aborta los restantes y sube al caller.
//
// Se invoca después del commit de la transacción que originó el evento: los
// listeners no tienen el bloqueo de fila y los que mutan estado abren su
// propia transacción.
type Dispatcher struct {
	log       *logger.Logger
	listeners map[string][]Listener
}

// NewDispatcher construye un dispatcher vacío.
func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		log:       log,
		listeners: make(map[string][]Listener),
	}
}

// Register añade listeners al final de la lista del evento, preservando el orden
// de llamada. Registrar en orden ES el contrato: no hay prioridades ni sets.
func (d *Dispatcher) Register(eventName string, ls ...Listener) {
	d.listeners[eventName] = append(d.listeners[eventName], ls...)
}

// Dispatch ejecuta los listeners del evento secuencialmente. Devuelve el primer
// error envuelto con el nombre del listener que falló; los listeners posteriores
// no se ejecutan.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) error {
	for _, l := range d.listeners[e.Name()] {
		d.log.Debug().
			Str("event", e.Name()).
			Str("listener", l.ListenerName()).
			Msg("ejecutando listener")
		if err := l.Handle(ctx, e); err != nil {
			d.log.Error().Err(err).
				Str("event", e.Name()).
				Str("listener", l.ListenerName()).
				Msg("listener falló; se aborta la cadena")
			return fmt.Errorf("listener %s para %s: %w", l.ListenerName(), e.Name(), err)
		}
	}
	return nil
}

// ListenerFunc adapta una función a Listener.
type ListenerFunc struct {
	Name string
	Fn   func(ctx context.Context, e Event) error
}

func (f ListenerFunc) ListenerName() string { return f.Name }

func (f ListenerFunc) Handle(ctx context.Context, e Event) error { return f.Fn(ctx, e) }
