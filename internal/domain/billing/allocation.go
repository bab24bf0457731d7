package billing

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"time"
)

// Tolerance es la tolerancia de centavos para comparaciones de dinero.
var Tolerance = decimal.RequireFromString("0.01")

// OpenInvoice es la vista mínima de una factura abierta que necesita el
// motor de distribución de pagos.
type OpenInvoice struct {
	ID      string
	Number  string
	DueDate time.Time
	Balance decimal.Decimal
}

// Distribute reparte amount entre las facturas abiertas del cliente,
// de la obligación más antigua a la más nueva (due_date ascendente, empates
// en orden de entrada). Es pura y determinista: sirve igual para la vista
// previa y para la transacción real.
//
// Nunca asigna más que amount en total; lo que sobra tras agotar las
// facturas queda como crédito no aplicado.
func Distribute(amount decimal.Decimal, open []OpenInvoice) (applied []entity.PaymentApplication, unapplied decimal.Decimal) {
	sorted := make([]OpenInvoice, len(open))
	copy(sorted, open)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	remaining := amount
	for _, inv := range sorted {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		// Facturas ya saldadas (balance dentro de la tolerancia) se omiten.
		if inv.Balance.LessThanOrEqual(Tolerance) {
			continue
		}
		toApply := decimal.Min(remaining, inv.Balance)
		applied = append(applied, entity.PaymentApplication{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.Number,
			AmountApplied: toApply,
		})
		remaining = remaining.Sub(toApply)
	}
	return applied, remaining
}
