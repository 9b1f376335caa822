package listeners

import (
	"context"
	"fmt"
	"strings"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// ReverseDdtMovementsListener revierte los movimientos de un DDT cancelado.
// Listener CRÍTICO: debe ser el primero de la lista de ddt.cancelled, por la
// misma razón que la generación en la confirmación. Sus errores se propagan.
//
// Delega cada reversión en ReverseStockMovementUseCase para que las reglas de
// inversión vivan en un solo lugar.
type ReverseDdtMovementsListener struct {
	movRepo   repository.StockMovementRepository
	reverseUC *stockmovement.ReverseStockMovementUseCase
	log       *logger.Logger
}

// NewReverseDdtMovementsListener construye el listener.
func NewReverseDdtMovementsListener(movRepo repository.StockMovementRepository, reverseUC *stockmovement.ReverseStockMovementUseCase, log *logger.Logger) *ReverseDdtMovementsListener {
	return &ReverseDdtMovementsListener{movRepo: movRepo, reverseUC: reverseUC, log: log}
}

func (l *ReverseDdtMovementsListener) ListenerName() string { return "reverse_ddt_movements" }

func (l *ReverseDdtMovementsListener) Handle(ctx context.Context, e events.Event) error {
	ev, ok := e.(events.DdtCancelled)
	if !ok {
		return nil
	}
	doc := ev.Ddt

	movements, err := l.movRepo.ListByDdt(doc.ID)
	if err != nil {
		return fmt.Errorf("listar movimientos del DDT %s: %w", doc.Code, err)
	}

	reversed := 0
	for _, m := range movements {
		// Las filas compensatorias previas del mismo DDT no se vuelven a revertir.
		if strings.HasPrefix(m.ReferenceDocument, "REV-") {
			continue
		}
		if _, err := l.reverseUC.Execute(ctx, m.ID, ev.Reason, ev.ActorID); err != nil {
			return fmt.Errorf("revertir movimiento %s: %w", m.Code, err)
		}
		l.log.Info().
			Str("movement_id", m.ID).
			Str("movement_code", m.Code).
			Str("ddt_id", doc.ID).
			Str("reason", ev.Reason).
			Msg("movimiento de stock revertido")
		reversed++
	}

	l.log.Info().
		Str("ddt_id", doc.ID).
		Str("ddt_code", doc.Code).
		Int("movements_count", reversed).
		Str("reason", ev.Reason).
		Msg("todos los movimientos del DDT revertidos")
	return nil
}
