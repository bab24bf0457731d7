package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentApplication es la porción de un pago aplicada a una factura.
type PaymentApplication struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
}

// Payment representa un pago de cliente. Inmutable una vez creado, salvo su
// eliminación completa (reversión). Invariante:
// sum(AppliedTo.AmountApplied) + UnappliedAmount == Amount.
type Payment struct {
	ID              string
	CompanyID       string
	CustomerID      string
	Amount          decimal.Decimal
	Method          string // cash, transfer, card, ...
	AppliedTo       []PaymentApplication
	UnappliedAmount decimal.Decimal
	Date            time.Time
	CreatedAt       time.Time
	CreatedBy       string
}
