package inventory_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-erp/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestReorderQuantity(t *testing.T) {
	assert.True(t, inventory.ReorderQuantity(d(5), d(10), d(50)).Equal(d(45)),
		"bajo el mínimo se repone hasta el máximo: 50-5=45")
	assert.True(t, inventory.ReorderQuantity(d(10), d(10), d(50)).IsZero(),
		"en el mínimo exacto no se repone")
	assert.True(t, inventory.ReorderQuantity(d(60), d(10), d(50)).IsZero(),
		"sobre el máximo nunca se repone cantidad negativa")
}

func TestDaysOfStock(t *testing.T) {
	assert.InDelta(t, 12.5, inventory.DaysOfStock(d(25), d(2)), 0.001)
	assert.True(t, math.IsInf(inventory.DaysOfStock(d(25), decimal.Zero), 1),
		"sin consumo la cobertura es infinita")
}

func TestStockTurnover(t *testing.T) {
	assert.True(t, inventory.StockTurnover(d(120), d(30)).Equal(d(4)))
	assert.True(t, inventory.StockTurnover(d(120), decimal.Zero).IsZero(),
		"inventario promedio cero no debe dividir")
}

func TestIsCriticalStock(t *testing.T) {
	assert.True(t, inventory.IsCriticalStock(d(5), d(10)), "5 <= 10/2 es crítico")
	assert.False(t, inventory.IsCriticalStock(d(6), d(10)))
}

func TestEconomicOrderQuantity(t *testing.T) {
	// sqrt((2*1000*50)/2) = sqrt(50000) ≈ 223.6
	assert.InDelta(t, 223.607, inventory.EconomicOrderQuantity(1000, 50, 2), 0.01)
	assert.Zero(t, inventory.EconomicOrderQuantity(1000, 50, 0),
		"costo de almacenaje cero no debe dividir")
}

func TestReorderPoint(t *testing.T) {
	// 4/día * 7 días lead time + 10 de seguridad = 38
	assert.True(t, inventory.ReorderPoint(d(4), 7, d(10)).Equal(d(38)))
}

func TestWeightedAverageCost(t *testing.T) {
	// (10*100 + 20*130) / 30 = 3600/30 = 120
	got := inventory.WeightedAverageCost(d(10), d(100), d(20), d(130))
	assert.True(t, got.Equal(d(120)), "promedio ponderado: es %s", got)

	assert.True(t, inventory.WeightedAverageCost(decimal.Zero, d(100), decimal.Zero, d(130)).IsZero(),
		"sin existencias ni entrada el promedio es cero")
}
