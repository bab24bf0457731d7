package inventory

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// Movement es un cambio de stock con signo: entradas positivas, salidas
// negativas. UnitCost solo es relevante en entradas; en salidas el costo
// del movimiento es el promedio vigente del producto (COGS).
type Movement struct {
	Type     string
	Quantity decimal.Decimal
	UnitCost *decimal.Decimal
}

// Result es el estado resultante de aplicar un movimiento a un producto.
type Result struct {
	NewStock       decimal.Decimal
	NewAverageCost decimal.Decimal
	NewTotalValue  decimal.Decimal
	// LogUnitCost es el costo unitario que debe quedar en el registro del
	// movimiento: el UnitCost de la entrada, o el promedio vigente en salidas.
	LogUnitCost decimal.Decimal
}

// CostCalculator implementa el costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoActual
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// Apply calcula el nuevo stock, costo promedio y valor total para un
// movimiento. Es una función pura: el caller persiste el resultado y el
// registro de auditoría dentro de su transacción.
//
// Reglas:
//   - newStock = stock + quantity; si queda negativo retorna ErrInsufficientStock
//     antes de cualquier escritura.
//   - El promedio solo cambia con quantity > 0 y UnitCost presente.
//   - Las salidas consumen al promedio vigente y nunca alteran el promedio.
//   - newStock == 0 conserva el promedio anterior (guardia de división por cero).
func Apply(stock, averageCost decimal.Decimal, m Movement) (Result, error) {
	if m.Quantity.IsZero() {
		return Result{}, domain.ErrInvalidInput
	}
	newStock := stock.Add(m.Quantity)
	if newStock.LessThan(decimal.Zero) {
		return Result{}, domain.ErrInsufficientStock
	}

	newAvg := averageCost
	logCost := averageCost
	if m.Quantity.GreaterThan(decimal.Zero) && m.UnitCost != nil {
		newAvg = CostCalculator(stock, averageCost, m.Quantity, *m.UnitCost)
		logCost = *m.UnitCost
	}

	return Result{
		NewStock:       newStock,
		NewAverageCost: newAvg,
		NewTotalValue:  newStock.Mul(newAvg),
		LogUnitCost:    logCost,
	}, nil
}

// ValidMovementType indica si el tipo de movimiento es conocido.
func ValidMovementType(t string) bool {
	switch t {
	case entity.MovementTypePurchase, entity.MovementTypeSale, entity.MovementTypeProduction,
		entity.MovementTypeAdjustment, entity.MovementTypeReturn, entity.MovementTypeDamage:
		return true
	}
	return false
}

// OutboundType indica si el tipo representa una salida (quantity negativa).
func OutboundType(t string) bool {
	return t == entity.MovementTypeSale || t == entity.MovementTypeDamage
}
