package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// La tabla es append-only: este adaptador nunca ejecuta UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, code, ddt_id, product_id, warehouse_id, from_warehouse_id, to_warehouse_id,
		site_id, type, quantity, delta, unit_cost, movement_date, user_id, notes, reference_document, created_at`

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Code, m.DdtID, m.ProductID, m.WarehouseID, m.FromWarehouseID, m.ToWarehouseID,
		m.SiteID, m.Type, m.Quantity, m.Delta, m.UnitCost, m.MovementDate, m.UserID,
		m.Notes, m.ReferenceDocument, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create stock movement %s: código duplicado: %w", m.Code, err)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, o nil si no existe.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	row := r.q.QueryRow(context.Background(), query, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// ListByDdt devuelve los movimientos generados por un DDT, en orden de creación.
func (r *StockMovementRepo) ListByDdt(ddtID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE ddt_id = $1 ORDER BY created_at, id`
	return r.list(query, ddtID)
}

// ListByWarehouse devuelve los movimientos de una bodega en el rango dado.
func (r *StockMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE warehouse_id = $1
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC, id DESC
		LIMIT $4 OFFSET $5`
	return r.list(query, warehouseID, from, to, limit, offset)
}

// ListByProduct devuelve los movimientos de un producto en el rango dado.
func (r *StockMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY movement_date DESC, id DESC
		LIMIT $4 OFFSET $5`
	return r.list(query, productID, from, to, limit, offset)
}

// ListByTypes devuelve los movimientos de los tipos dados en el rango,
// ordenados por ID ascendente (orden estable para el detector de duplicados).
func (r *StockMovementRepo) ListByTypes(types []string, from, to *time.Time) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE type = ANY($1)
		  AND ($2::timestamptz IS NULL OR movement_date >= $2)
		  AND ($3::timestamptz IS NULL OR movement_date <= $3)
		ORDER BY id`
	return r.list(query, types, from, to)
}

// CountByDate cuenta los movimientos del día calendario dado.
func (r *StockMovementRepo) CountByDate(day time.Time) (int, error) {
	query := `SELECT count(*) FROM stock_movements WHERE movement_date::date = $1::date`
	var count int
	if err := r.q.QueryRow(context.Background(), query, day).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements by date: %w", err)
	}
	return count, nil
}

func (r *StockMovementRepo) list(query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var out []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := row.Scan(
		&m.ID, &m.Code, &m.DdtID, &m.ProductID, &m.WarehouseID, &m.FromWarehouseID, &m.ToWarehouseID,
		&m.SiteID, &m.Type, &m.Quantity, &m.Delta, &m.UnitCost, &m.MovementDate, &m.UserID,
		&m.Notes, &m.ReferenceDocument, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
