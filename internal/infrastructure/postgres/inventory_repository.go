package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx; las variantes ForUpdate solo tienen sentido con tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, warehouse_id, quantity_available, quantity_reserved,
		quantity_in_transit, quantity_quarantine, minimum_stock, created_at, updated_at`

// Get obtiene el registro de inventario de un producto en una bodega, o nil.
func (r *InventoryRepo) Get(productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	return r.scanOne(query, productID, warehouseID)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE), o nil.
func (r *InventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	return r.scanOne(query, productID, warehouseID)
}

// GetOrCreateForUpdate crea el registro en cero si no existe y devuelve la fila
// bloqueada. El INSERT ... ON CONFLICT DO NOTHING tolera la carrera entre dos
// transacciones que crean el mismo par a la vez: ambas terminan bloqueando la
// misma fila en el SELECT.
func (r *InventoryRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	insert := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity_available, quantity_reserved,
			quantity_in_transit, quantity_quarantine, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, 0, now(), now())
		ON CONFLICT (product_id, warehouse_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, uuid.New().String(), productID, warehouseID); err != nil {
		return nil, fmt.Errorf("create inventory: %w", err)
	}
	inv, err := r.GetForUpdate(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("inventory %s/%s desapareció tras el insert", productID, warehouseID)
	}
	return inv, nil
}

// Save persiste las cantidades del registro (upsert por producto+bodega).
func (r *InventoryRepo) Save(inv *entity.Inventory) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity_available, quantity_reserved,
			quantity_in_transit, quantity_quarantine, minimum_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity_available = EXCLUDED.quantity_available,
			quantity_reserved = EXCLUDED.quantity_reserved,
			quantity_in_transit = EXCLUDED.quantity_in_transit,
			quantity_quarantine = EXCLUDED.quantity_quarantine,
			minimum_stock = EXCLUDED.minimum_stock,
			updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.WarehouseID,
		inv.QuantityAvailable, inv.QuantityReserved, inv.QuantityInTransit, inv.QuantityQuarantine,
		inv.MinimumStock,
	)
	if err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scanOne(query string, args ...any) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.ProductID, &inv.WarehouseID,
		&inv.QuantityAvailable, &inv.QuantityReserved, &inv.QuantityInTransit, &inv.QuantityQuarantine,
		&inv.MinimumStock, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &inv, nil
}
