package stockmovement_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-erp/internal/application/stockmovement"
	"github.com/tu-usuario/almacen-erp/internal/domain/entity"
	"github.com/tu-usuario/almacen-erp/internal/testutil"
)

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas del detector de dobles descuentos: un OUTPUT hacia cantiere y una
// SITE_ALLOCATION del mismo producto/bodega/cantiere el mismo día suelen ser
// el mismo hecho físico registrado dos veces.
// ──────────────────────────────────────────────────────────────────────────────

const siteID = "dddddddd-0000-0000-0000-000000000001"

func newReport(movRepo *testutil.MemoryMovementRepo) *stockmovement.DuplicateMovementReport {
	products := testutil.NewMemoryProductRepo(&entity.Product{ID: productID, Name: "Cemento 25kg"})
	warehouses := testutil.NewMemoryWarehouseRepo()
	_ = warehouses.Create(&entity.Warehouse{ID: warehouseA, Name: "Deposito nord"})
	sites := testutil.NewMemorySiteRepo(&entity.Site{ID: siteID, Name: "Cantiere via Roma"})
	return stockmovement.NewDuplicateMovementReport(movRepo, products, warehouses, sites)
}

func seed(movRepo *testutil.MemoryMovementRepo, movType string, site *string, day time.Time, qty int64, code string) {
	_ = movRepo.Create(&entity.StockMovement{
		Code:         code,
		ProductID:    productID,
		WarehouseID:  warehouseA,
		SiteID:       site,
		Type:         movType,
		Quantity:     decimal.NewFromInt(qty),
		MovementDate: day,
		UserID:       reverserUser,
	})
}

func TestDuplicateReport_DetectaPar(t *testing.T) {
	movRepo := testutil.NewMemoryMovementRepo()
	site := siteID
	day := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	seed(movRepo, entity.MovementTypeOUTPUT, &site, day, 50, "MOV-20260815-001")
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, day.Add(2*time.Hour), 50, "MOV-20260815-002")

	pairs, err := newReport(movRepo).Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, pairs, 1, "salida + asignación del mismo día/cantiere es un par sospechoso")

	p := pairs[0]
	assert.Equal(t, "Cemento 25kg", p.ProductName)
	assert.Equal(t, "Deposito nord", p.WarehouseName)
	assert.Equal(t, "Cantiere via Roma", p.SiteName)
	assert.Equal(t, "MOV-20260815-001", p.OutputCode)
	assert.Equal(t, "MOV-20260815-002", p.AllocationCode)
	assert.True(t, p.OutputQuantity.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "2026-08-15", p.Date.Format("2006-01-02"))
}

func TestDuplicateReport_DiasDistintosNoEmparejan(t *testing.T) {
	movRepo := testutil.NewMemoryMovementRepo()
	site := siteID
	day := time.Date(2026, 8, 15, 23, 0, 0, 0, time.UTC)

	seed(movRepo, entity.MovementTypeOUTPUT, &site, day, 50, "MOV-20260815-001")
	// Dos horas después pero ya es otro día calendario.
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, day.Add(2*time.Hour), 50, "MOV-20260816-001")

	pairs, err := newReport(movRepo).Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, pairs, "el cruce es por día calendario, no por ventana de horas")
}

func TestDuplicateReport_SinCantiereNoParticipa(t *testing.T) {
	movRepo := testutil.NewMemoryMovementRepo()
	site := siteID
	day := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	seed(movRepo, entity.MovementTypeOUTPUT, nil, day, 50, "MOV-20260815-001")
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, day, 50, "MOV-20260815-002")

	pairs, err := newReport(movRepo).Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, pairs, "una salida sin cantiere no puede cruzarse con asignaciones")
}

func TestDuplicateReport_RangoDeFechas(t *testing.T) {
	movRepo := testutil.NewMemoryMovementRepo()
	site := siteID
	inside := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	outside := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)

	seed(movRepo, entity.MovementTypeOUTPUT, &site, outside, 10, "MOV-20260701-001")
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, outside, 10, "MOV-20260701-002")
	seed(movRepo, entity.MovementTypeOUTPUT, &site, inside, 20, "MOV-20260815-001")
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, inside, 20, "MOV-20260815-002")

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	pairs, err := newReport(movRepo).Execute(context.Background(), &from, nil)
	require.NoError(t, err)
	require.Len(t, pairs, 1, "los pares de julio quedan fuera del rango")
	assert.Equal(t, "MOV-20260815-001", pairs[0].OutputCode)
}

func TestDuplicateReport_CantidadesDistintasTambienCruzan(t *testing.T) {
	movRepo := testutil.NewMemoryMovementRepo()
	site := siteID
	day := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)

	// El reporte no exige cantidades iguales: entrega ambas y el humano decide.
	seed(movRepo, entity.MovementTypeOUTPUT, &site, day, 50, "MOV-20260815-001")
	seed(movRepo, entity.MovementTypeSITE_ALLOCATION, &site, day, 30, "MOV-20260815-002")

	pairs, err := newReport(movRepo).Execute(context.Background(), nil, nil)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.True(t, pairs[0].OutputQuantity.Equal(decimal.NewFromInt(50)))
	assert.True(t, pairs[0].AllocationQuantity.Equal(decimal.NewFromInt(30)))
}
