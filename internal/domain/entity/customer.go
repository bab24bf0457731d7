package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa (facturación).
// TotalOutstanding debe coincidir con la suma de balance_amount de sus
// facturas; lo mantienen las transacciones de facturación y pagos.
type Customer struct {
	ID               string
	CompanyID        string
	Name             string
	TaxID            string // NIT o Cédula
	Email            string
	Phone            string
	TotalSpent       decimal.Decimal
	TotalInvoices    int64
	TotalOutstanding decimal.Decimal
	LastOrderDate    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
