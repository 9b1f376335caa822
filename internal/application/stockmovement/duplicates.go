package stockmovement

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/domain/repository"
)

// DuplicateMovementReport correlaciona el libro de movimientos para señalar
// posibles dobles conteos: un OUTPUT y un SITE_ALLOCATION del mismo producto,
// bodega y cantiere en el mismo día calendario suelen ser la misma operación
// registrada dos veces. Es puramente consultivo: marca candidatos para revisión
// manual, no corrige nada.
type DuplicateMovementReport struct {
	movRepo       repository.StockMovementRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	siteRepo      repository.SiteRepository
}

// NewDuplicateMovementReport construye el reporte.
func NewDuplicateMovementReport(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	siteRepo repository.SiteRepository,
) *DuplicateMovementReport {
	return &DuplicateMovementReport{
		movRepo:       movRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		siteRepo:      siteRepo,
	}
}

// DuplicatePair es una fila del reporte: un par OUTPUT/SITE_ALLOCATION candidato.
type DuplicatePair struct {
	ProductName        string
	WarehouseName      string
	SiteName           string
	ReferenceDocument  string
	OutputID           string
	OutputCode         string
	OutputQuantity     decimal.Decimal
	AllocationID       string
	AllocationCode     string
	AllocationQuantity decimal.Decimal
	Date               time.Time // día calendario compartido
}

// Execute genera el reporte en el rango dado (nil = sin límite). Cada par se
// reporta una sola vez: el ID menor emparejado con el mayor.
func (r *DuplicateMovementReport) Execute(ctx context.Context, from, to *time.Time) ([]DuplicatePair, error) {
	movements, err := r.movRepo.ListByTypes(
		[]string{entity.MovementTypeOUTPUT, entity.MovementTypeSITE_ALLOCATION}, from, to)
	if err != nil {
		return nil, err
	}

	// Agrupar por (producto, bodega, cantiere, día). Los movimientos sin
	// cantiere no participan: el cruce exige el mismo site_id.
	type groupKey struct {
		productID   string
		warehouseID string
		siteID      string
		day         string
	}
	groups := make(map[groupKey][]*entity.StockMovement)
	for _, m := range movements {
		if m.SiteID == nil {
			continue
		}
		key := groupKey{m.ProductID, m.WarehouseID, *m.SiteID, m.MovementDate.Format("2006-01-02")}
		groups[key] = append(groups[key], m)
	}

	var pairs []DuplicatePair
	for key, group := range groups {
		for _, out := range group {
			if out.Type != entity.MovementTypeOUTPUT {
				continue
			}
			for _, alloc := range group {
				if alloc.Type != entity.MovementTypeSITE_ALLOCATION || out.ID >= alloc.ID {
					continue
				}
				day, _ := time.Parse("2006-01-02", key.day)
				pairs = append(pairs, DuplicatePair{
					ProductName:        r.productName(key.productID),
					WarehouseName:      r.warehouseName(key.warehouseID),
					SiteName:           r.siteName(key.siteID),
					ReferenceDocument:  out.ReferenceDocument,
					OutputID:           out.ID,
					OutputCode:         out.Code,
					OutputQuantity:     out.Quantity,
					AllocationID:       alloc.ID,
					AllocationCode:     alloc.Code,
					AllocationQuantity: alloc.Quantity,
					Date:               day,
				})
			}
		}
	}

	// Orden estable para el consumidor (CLI/HTTP).
	sort.Slice(pairs, func(i, j int) bool {
		if !pairs[i].Date.Equal(pairs[j].Date) {
			return pairs[i].Date.Before(pairs[j].Date)
		}
		return pairs[i].OutputID < pairs[j].OutputID
	})
	return pairs, nil
}

func (r *DuplicateMovementReport) productName(id string) string {
	if p, err := r.productRepo.GetByID(id); err == nil && p != nil {
		return p.Name
	}
	return "N/A"
}

func (r *DuplicateMovementReport) warehouseName(id string) string {
	if w, err := r.warehouseRepo.GetByID(id); err == nil && w != nil {
		return w.Name
	}
	return "N/A"
}

func (r *DuplicateMovementReport) siteName(id string) string {
	if s, err := r.siteRepo.GetByID(id); err == nil && s != nil {
		return s.Name
	}
	return "N/A"
}
