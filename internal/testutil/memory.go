// Package testutil provee implementaciones en memoria de los puertos de
// persistencia para las pruebas de los casos de uso. El TxRunner serializa
// las "transacciones" con un mutex, que reproduce el efecto de los bloqueos
// de fila de Postgres a nivel de prueba.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// ─────────────────────────────────────────────────────────────────────────────
// Inventario
// ─────────────────────────────────────────────────────────────────────────────

// MemoryInventoryRepo mantiene el inventario en un mapa (producto|bodega).
type MemoryInventoryRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Inventory
	next int
}

func NewMemoryInventoryRepo() *MemoryInventoryRepo {
	return &MemoryInventoryRepo{rows: map[string]*entity.Inventory{}}
}

func invKey(productID, warehouseID string) string {
	return productID + "|" + warehouseID
}

// Seed inserta un registro directamente, para preparar escenarios.
func (r *MemoryInventoryRepo) Seed(inv *entity.Inventory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.rows[invKey(inv.ProductID, inv.WarehouseID)] = &cp
}

func (r *MemoryInventoryRepo) Get(productID, warehouseID string) (*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[invKey(productID, warehouseID)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryInventoryRepo) GetForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	return r.Get(productID, warehouseID)
}

func (r *MemoryInventoryRepo) GetOrCreateForUpdate(productID, warehouseID string) (*entity.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := invKey(productID, warehouseID)
	if row, ok := r.rows[key]; ok {
		cp := *row
		return &cp, nil
	}
	r.next++
	now := time.Now()
	row := &entity.Inventory{
		ID:          "inv-" + productID + "-" + warehouseID,
		ProductID:   productID,
		WarehouseID: warehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows[key] = row
	cp := *row
	return &cp, nil
}

func (r *MemoryInventoryRepo) Save(inv *entity.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	cp.UpdatedAt = time.Now()
	r.rows[invKey(inv.ProductID, inv.WarehouseID)] = &cp
	return nil
}

var _ repository.InventoryRepository = (*MemoryInventoryRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────
// Movimientos de stock
// ─────────────────────────────────────────────────────────────────────────────

// MemoryMovementRepo es un libro append-only en memoria. Los IDs autogenerados
// son secuenciales ("mov-000001", ...) para que el orden lexicográfico coincida
// con el orden de inserción, igual que los consecutivos de la BD.
type MemoryMovementRepo struct {
	mu   sync.Mutex
	rows []*entity.StockMovement
	next int
}

func NewMemoryMovementRepo() *MemoryMovementRepo {
	return &MemoryMovementRepo{}
}

func (r *MemoryMovementRepo) Create(m *entity.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		r.next++
		m.ID = newSequentialID("mov", r.next)
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cp := *m
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *MemoryMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryMovementRepo) ListByDdt(ddtID string) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, row := range r.rows {
		if row.DdtID != nil && *row.DdtID == ddtID {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, row := range r.rows {
		if row.WarehouseID != warehouseID || !inRange(row.MovementDate, from, to) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *MemoryMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, row := range r.rows {
		if row.ProductID != productID || !inRange(row.MovementDate, from, to) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	return paginate(out, limit, offset), nil
}

func (r *MemoryMovementRepo) ListByTypes(types []string, from, to *time.Time) ([]*entity.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.StockMovement
	for _, row := range r.rows {
		if !containsString(types, row.Type) || !inRange(row.MovementDate, from, to) {
			continue
		}
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryMovementRepo) CountByDate(day time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	y, m, d := day.Date()
	count := 0
	for _, row := range r.rows {
		ry, rm, rd := row.MovementDate.Date()
		if ry == y && rm == m && rd == d {
			count++
		}
	}
	return count, nil
}

// All devuelve una copia del libro completo en orden de inserción.
func (r *MemoryMovementRepo) All() []*entity.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.StockMovement, 0, len(r.rows))
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	return out
}

var _ repository.StockMovementRepository = (*MemoryMovementRepo)(nil)

func newSequentialID(prefix string, n int) string {
	digits := "000000"
	s := digits + itoa(n)
	return prefix + "-" + s[len(s)-6:]
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b strings.Builder
	var digits []byte
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
	}
	return b.String()
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func paginate(rows []*entity.StockMovement, limit, offset int) []*entity.StockMovement {
	if offset >= len(rows) {
		return nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// ─────────────────────────────────────────────────────────────────────────────
// Catálogos
// ─────────────────────────────────────────────────────────────────────────────

// MemoryWarehouseRepo CRUD de bodegas en memoria.
type MemoryWarehouseRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Warehouse
}

func NewMemoryWarehouseRepo() *MemoryWarehouseRepo {
	return &MemoryWarehouseRepo{rows: map[string]*entity.Warehouse{}}
}

func (r *MemoryWarehouseRepo) Create(w *entity.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *w
	r.rows[w.ID] = &cp
	return nil
}

func (r *MemoryWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Warehouse
	for _, row := range r.rows {
		cp := *row
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryWarehouseRepo) Update(w *entity.Warehouse) error {
	return r.Create(w)
}

func (r *MemoryWarehouseRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

var _ repository.WarehouseRepository = (*MemoryWarehouseRepo)(nil)

// MemoryProductRepo lectura de productos en memoria.
type MemoryProductRepo struct {
	rows map[string]*entity.Product
}

func NewMemoryProductRepo(products ...*entity.Product) *MemoryProductRepo {
	r := &MemoryProductRepo{rows: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.rows[p.ID] = &cp
	}
	return r
}

func (r *MemoryProductRepo) GetByID(id string) (*entity.Product, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

var _ repository.ProductRepository = (*MemoryProductRepo)(nil)

// MemorySiteRepo lectura de cantieri en memoria.
type MemorySiteRepo struct {
	rows map[string]*entity.Site
}

func NewMemorySiteRepo(sites ...*entity.Site) *MemorySiteRepo {
	r := &MemorySiteRepo{rows: map[string]*entity.Site{}}
	for _, s := range sites {
		cp := *s
		r.rows[s.ID] = &cp
	}
	return r
}

func (r *MemorySiteRepo) GetByID(id string) (*entity.Site, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

var _ repository.SiteRepository = (*MemorySiteRepo)(nil)

// MemoryDdtRepo persistencia de DDT en memoria.
type MemoryDdtRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Ddt
}

func NewMemoryDdtRepo(docs ...*entity.Ddt) *MemoryDdtRepo {
	r := &MemoryDdtRepo{rows: map[string]*entity.Ddt{}}
	for _, d := range docs {
		cp := *d
		r.rows[d.ID] = &cp
	}
	return r
}

func (r *MemoryDdtRepo) GetByID(id string) (*entity.Ddt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryDdtRepo) UpdateStatus(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil
	}
	row.Status = status
	row.UpdatedAt = time.Now()
	return nil
}

var _ repository.DdtRepository = (*MemoryDdtRepo)(nil)

// MemoryUserRepo persistencia de usuarios en memoria.
type MemoryUserRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{rows: map[string]*entity.User{}}
}

func (r *MemoryUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.rows[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *MemoryUserRepo) FindByEmail(email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, nil
}

var _ repository.UserRepository = (*MemoryUserRepo)(nil)

// ─────────────────────────────────────────────────────────────────────────────
// TxRunner
// ─────────────────────────────────────────────────────────────────────────────

// MemoryTxRunner serializa las transacciones con un mutex global: dos llamadas
// concurrentes a Run nunca se intercalan, igual que dos transacciones que
// bloquean la misma fila de inventario.
type MemoryTxRunner struct {
	mu        sync.Mutex
	Inventory *MemoryInventoryRepo
	Movements *MemoryMovementRepo
	Ddt       *MemoryDdtRepo
}

func NewMemoryTxRunner(inv *MemoryInventoryRepo, mov *MemoryMovementRepo) *MemoryTxRunner {
	return &MemoryTxRunner{Inventory: inv, Movements: mov}
}

func (t *MemoryTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.Inventory, t.Movements)
}

func (t *MemoryTxRunner) RunDdt(ctx context.Context, fn func(
	ddtRepo repository.DdtRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.Ddt, t.Inventory, t.Movements)
}
