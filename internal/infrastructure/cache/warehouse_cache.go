// Package cache implementa la caché de bodegas sobre Redis. La caché es un
// acelerador de lecturas: la fuente de verdad siempre es PostgreSQL, por lo
// que una entrada perdida solo cuesta una consulta extra.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tu-usuario/almacen-erp/internal/application/listeners"
	"github.com/tu-usuario/almacen-erp/internal/application/usecase"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
)

const warehouseTTL = 24 * time.Hour

var (
	_ listeners.WarehouseCache     = (*RedisWarehouseCache)(nil)
	_ usecase.WarehouseCacheReader = (*RedisWarehouseCache)(nil)
)

// RedisWarehouseCache guarda bodegas serializadas en JSON bajo "warehouse:<id>".
type RedisWarehouseCache struct {
	client *redis.Client
}

// NewRedisWarehouseCache construye la caché sobre un cliente Redis ya conectado.
func NewRedisWarehouseCache(client *redis.Client) *RedisWarehouseCache {
	return &RedisWarehouseCache{client: client}
}

func warehouseKey(id string) string {
	return "warehouse:" + id
}

// Set serializa la bodega y la guarda con TTL.
func (c *RedisWarehouseCache) Set(w *entity.Warehouse) error {
	payload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal warehouse: %w", err)
	}
	if err := c.client.Set(context.Background(), warehouseKey(w.ID), payload, warehouseTTL).Err(); err != nil {
		return fmt.Errorf("set warehouse cache: %w", err)
	}
	return nil
}

// Invalidate elimina la entrada de la bodega.
func (c *RedisWarehouseCache) Invalidate(warehouseID string) error {
	if err := c.client.Del(context.Background(), warehouseKey(warehouseID)).Err(); err != nil {
		return fmt.Errorf("invalidate warehouse cache: %w", err)
	}
	return nil
}

// Get devuelve la bodega cacheada, o nil si no está.
func (c *RedisWarehouseCache) Get(warehouseID string) (*entity.Warehouse, error) {
	payload, err := c.client.Get(context.Background(), warehouseKey(warehouseID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("get warehouse cache: %w", err)
	}
	var w entity.Warehouse
	if err := json.Unmarshal(payload, &w); err != nil {
		return nil, fmt.Errorf("unmarshal warehouse: %w", err)
	}
	return &w, nil
}

var (
	_ listeners.WarehouseCache     = (NoopWarehouseCache{})
	_ usecase.WarehouseCacheReader = (NoopWarehouseCache{})
)

// NoopWarehouseCache se usa cuando Redis no está configurado (REDIS_ADDR vacío).
type NoopWarehouseCache struct{}

func (NoopWarehouseCache) Set(*entity.Warehouse) error { return nil }
func (NoopWarehouseCache) Invalidate(string) error     { return nil }
func (NoopWarehouseCache) Get(string) (*entity.Warehouse, error) {
	return nil, nil
}
