package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

var _ repository.DdtRepository = (*DdtRepo)(nil)

// DdtRepo persistencia de DDT sobre PostgreSQL.
type DdtRepo struct {
	q Querier
}

// NewDdtRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDdtRepository(q Querier) *DdtRepo {
	return &DdtRepo{q: q}
}

// GetByID obtiene el DDT con sus renglones, o nil si no existe.
func (r *DdtRepo) GetByID(id string) (*entity.Ddt, error) {
	query := `
		SELECT id, code, type, status, from_warehouse_id, to_warehouse_id, site_id, supplier_id,
			coalesce(ddt_number, ''), ddt_date, coalesce(notes, ''), created_by, created_at, updated_at
		FROM ddt WHERE id = $1`
	var d entity.Ddt
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Code, &d.Type, &d.Status, &d.FromWarehouseID, &d.ToWarehouseID, &d.SiteID, &d.SupplierID,
		&d.DdtNumber, &d.DdtDate, &d.Notes, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ddt: %w", err)
	}

	itemsQuery := `
		SELECT id, ddt_id, product_id, quantity, unit_cost
		FROM ddt_items WHERE ddt_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("list ddt items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.DdtItem
		if err := rows.Scan(&it.ID, &it.DdtID, &it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan ddt item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateStatus cambia el estado del DDT.
func (r *DdtRepo) UpdateStatus(id, status string) error {
	query := `UPDATE ddt SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update ddt status: %w", err)
	}
	return nil
}
