package inventory

import (
	"fmt"
	"time"

	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// NextMovementCode genera el código legible del movimiento: MOV-YYYYMMDD-NNN,
// con consecutivo diario basado en el conteo de movimientos creados hoy.
// Debe llamarse dentro de la misma transacción que crea el movimiento para que
// el consecutivo sea coherente con lo ya persistido.
func NextMovementCode(movRepo repository.StockMovementRepository, now time.Time) (string, error) {
	count, err := movRepo.CountByDate(now)
	if err != nil {
		return "", fmt.Errorf("contar movimientos del día: %w", err)
	}
	return fmt.Sprintf("MOV-%s-%03d", now.Format("20060102"), count+1), nil
}
