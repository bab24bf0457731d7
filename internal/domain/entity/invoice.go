package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. Paid es terminal; solo una reversión de pago
// puede regresarla hacia PartiallyPaid/Unpaid.
const (
	InvoiceStatusUnpaid        = "unpaid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusOverdue       = "overdue" // unpaid/partially_paid con due_date vencida
)

// Invoice representa la cabecera de una factura.
// BalanceAmount = Total - PaidAmount siempre; Payments lista los IDs de
// pagos que aplicaron dinero a esta factura (espejo de payments.applied_to).
type Invoice struct {
	ID            string
	CompanyID     string
	CustomerID    string
	Number        string
	Date          time.Time
	DueDate       time.Time
	Total         decimal.Decimal
	PaidAmount    decimal.Decimal
	BalanceAmount decimal.Decimal
	Status        string
	Payments      []string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// InvoiceItem representa una línea de detalle de una factura.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
