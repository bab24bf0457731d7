package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// StatusFor recalcula el estado de una factura a partir de sus números
// actuales; nunca se guarda como estado independiente.
//
//	balance <= 0.01            => paid
//	paid > 0                   => partially_paid
//	due_date < now             => overdue
//	en otro caso               => unpaid
func StatusFor(paidAmount, balanceAmount decimal.Decimal, dueDate, now time.Time) string {
	if balanceAmount.LessThanOrEqual(Tolerance) {
		return entity.InvoiceStatusPaid
	}
	if paidAmount.GreaterThan(decimal.Zero) {
		return entity.InvoiceStatusPartiallyPaid
	}
	if dueDate.Before(now) {
		return entity.InvoiceStatusOverdue
	}
	return entity.InvoiceStatusUnpaid
}
