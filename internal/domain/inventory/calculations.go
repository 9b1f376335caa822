package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// Servicios de dominio puros para inventario: solo cálculos, sin acceso a datos.

// ReorderQuantity calcula la cantidad a reponer según min/max y stock actual.
// Si el stock está en o sobre el mínimo no se repone nada.
func ReorderQuantity(currentStock, minStock, maxStock decimal.Decimal) decimal.Decimal {
	if currentStock.GreaterThanOrEqual(minStock) {
		return decimal.Zero
	}
	qty := maxStock.Sub(currentStock)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

// DaysOfStock calcula los días de cobertura según el consumo diario promedio.
// Consumo cero o negativo se interpreta como cobertura infinita (+Inf).
func DaysOfStock(currentStock, averageDailyUsage decimal.Decimal) float64 {
	if averageDailyUsage.LessThanOrEqual(decimal.Zero) {
		return math.Inf(1)
	}
	days, _ := currentStock.Div(averageDailyUsage).Float64()
	return days
}

// StockTurnover calcula la rotación (vendido / inventario promedio).
func StockTurnover(totalSold, averageInventory decimal.Decimal) decimal.Decimal {
	if averageInventory.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalSold.Div(averageInventory)
}

// IsCriticalStock indica nivel crítico: la mitad del stock mínimo o menos.
func IsCriticalStock(currentStock, minStock decimal.Decimal) bool {
	half := minStock.Div(decimal.NewFromInt(2))
	return currentStock.LessThanOrEqual(half)
}

// EconomicOrderQuantity calcula el lote económico de pedido (EOQ).
// Fórmula: sqrt((2 * demanda * costoPedido) / costoAlmacenajeUnitario)
func EconomicOrderQuantity(annualDemand, orderCost, holdingCostPerUnit float64) float64 {
	if holdingCostPerUnit <= 0 {
		return 0
	}
	return math.Sqrt((2 * annualDemand * orderCost) / holdingCostPerUnit)
}

// ReorderPoint calcula el punto de reorden.
// Fórmula: (demanda diaria promedio * días de lead time) + stock de seguridad
func ReorderPoint(averageDailyDemand decimal.Decimal, leadTimeDays int, safetyStock decimal.Decimal) decimal.Decimal {
	return averageDailyDemand.Mul(decimal.NewFromInt(int64(leadTimeDays))).Add(safetyStock)
}

// WeightedAverageCost implementa la lógica de costo promedio ponderado.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(currentStock, currentCost, intakeQty, intakeCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(intakeQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentCost).Add(intakeQty.Mul(intakeCost))
	return num.Div(sum)
}
