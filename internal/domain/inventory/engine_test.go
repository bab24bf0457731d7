package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// CostCalculator — costo promedio ponderado
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: stock 10 a 5.00, entran 10 a 7.00 → promedio 6.00.
func TestCostCalculator_PromedioPonderado(t *testing.T) {
	nuevo := inventory.CostCalculator(d("10"), d("5.00"), d("10"), d("7.00"))
	assert.True(t, d("6.00").Equal(nuevo), "promedio esperado 6.00, obtenido %s", nuevo)
}

// Primera entrada sobre stock cero: el promedio es el costo de la entrada.
func TestCostCalculator_StockCeroTomaCostoEntrada(t *testing.T) {
	nuevo := inventory.CostCalculator(decimal.Zero, decimal.Zero, d("50"), d("12.50"))
	assert.True(t, d("12.50").Equal(nuevo))
}

// Guardia de división por cero: si stock + entrada <= 0 conserva el promedio.
func TestCostCalculator_SumaNoPositivaConservaPromedio(t *testing.T) {
	nuevo := inventory.CostCalculator(d("5"), d("8.00"), d("-5"), d("0"))
	assert.True(t, d("8.00").Equal(nuevo), "debe conservar el promedio anterior")
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply — aplicación de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaActualizaPromedioYValorTotal(t *testing.T) {
	cost := d("7.00")
	res, err := inventory.Apply(d("10"), d("5.00"), inventory.Movement{
		Type:     entity.MovementTypePurchase,
		Quantity: d("10"),
		UnitCost: &cost,
	})
	require.NoError(t, err)

	assert.True(t, d("20").Equal(res.NewStock))
	assert.True(t, d("6.00").Equal(res.NewAverageCost))
	assert.True(t, d("120.00").Equal(res.NewTotalValue), "valor total = 20 * 6.00")
	assert.True(t, d("7.00").Equal(res.LogUnitCost), "el registro guarda el costo de la entrada")
}

// Las salidas consumen al promedio vigente y nunca lo alteran.
func TestApply_SalidaNoAlteraPromedio(t *testing.T) {
	res, err := inventory.Apply(d("20"), d("6.00"), inventory.Movement{
		Type:     entity.MovementTypeSale,
		Quantity: d("-8"),
	})
	require.NoError(t, err)

	assert.True(t, d("12").Equal(res.NewStock))
	assert.True(t, d("6.00").Equal(res.NewAverageCost), "la salida no debe cambiar el promedio")
	assert.True(t, d("6.00").Equal(res.LogUnitCost), "el COGS de la salida es el promedio vigente")
	assert.True(t, d("72.00").Equal(res.NewTotalValue))
}

// Vaciar el stock conserva el promedio anterior (guardia de división por cero).
func TestApply_StockQuedaEnCeroConservaPromedio(t *testing.T) {
	res, err := inventory.Apply(d("12"), d("6.00"), inventory.Movement{
		Type:     entity.MovementTypeSale,
		Quantity: d("-12"),
	})
	require.NoError(t, err)

	assert.True(t, res.NewStock.IsZero())
	assert.True(t, d("6.00").Equal(res.NewAverageCost), "stock cero conserva el promedio")
	assert.True(t, res.NewTotalValue.IsZero())
}

// Una entrada sin costo (ej. ajuste positivo sin valorar) no mueve el promedio.
func TestApply_EntradaSinCostoNoMuevePromedio(t *testing.T) {
	res, err := inventory.Apply(d("10"), d("5.00"), inventory.Movement{
		Type:     entity.MovementTypeAdjustment,
		Quantity: d("3"),
	})
	require.NoError(t, err)

	assert.True(t, d("13").Equal(res.NewStock))
	assert.True(t, d("5.00").Equal(res.NewAverageCost))
}

func TestApply_StockInsuficienteRetornaError(t *testing.T) {
	_, err := inventory.Apply(d("5"), d("6.00"), inventory.Movement{
		Type:     entity.MovementTypeSale,
		Quantity: d("-6"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApply_CantidadCeroRetornaError(t *testing.T) {
	_, err := inventory.Apply(d("5"), d("6.00"), inventory.Movement{
		Type:     entity.MovementTypeAdjustment,
		Quantity: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, inventory.ValidMovementType(entity.MovementTypePurchase))
	assert.True(t, inventory.ValidMovementType(entity.MovementTypeDamage))
	assert.False(t, inventory.ValidMovementType("transfer"))
	assert.False(t, inventory.ValidMovementType(""))
}
