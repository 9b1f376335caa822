package listeners

import (
	"context"

	"github.com/tu-usuario/almacen-erp/internal/application/events"
	"github.com/tu-usuario/almacen-erp/pkg/logger"
)

// UpdateWarehouseCacheListener mantiene la caché de bodegas al día tras cada
// alta, modificación o baja. Observacional: un fallo de caché se loguea y no
// rompe la cadena (la caché se repuebla en la próxima lectura).
type UpdateWarehouseCacheListener struct {
	cache WarehouseCache
	log   *logger.Logger
}

// NewUpdateWarehouseCacheListener construye el listener.
func NewUpdateWarehouseCacheListener(cache WarehouseCache, log *logger.Logger) *UpdateWarehouseCacheListener {
	return &UpdateWarehouseCacheListener{cache: cache, log: log}
}

func (l *UpdateWarehouseCacheListener) ListenerName() string { return "update_warehouse_cache" }

func (l *UpdateWarehouseCacheListener) Handle(_ context.Context, e events.Event) error {
	var err error
	switch ev := e.(type) {
	case events.WarehouseCreated:
		err = l.cache.Set(ev.Warehouse)
	case events.WarehouseUpdated:
		err = l.cache.Set(ev.Warehouse)
	case events.WarehouseDeleted:
		err = l.cache.Invalidate(ev.WarehouseID)
	default:
		return nil
	}
	if err != nil {
		l.log.Warn().Err(err).Str("event", e.Name()).Msg("no se pudo actualizar la caché de bodegas")
	}
	return nil
}
