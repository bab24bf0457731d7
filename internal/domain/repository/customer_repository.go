package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Los agregados (total_spent, total_invoices, total_outstanding) se mutan
// solo con ApplySale/AdjustOutstanding dentro de la misma transacción que
// tocó las facturas, para que nunca diverjan de la suma de balances.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// GetForUpdate bloquea la fila del cliente; usar dentro de una transacción.
	GetForUpdate(id string) (*entity.Customer, error)
	GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// ApplySale registra una factura emitida en los agregados del cliente:
	// total_spent += total, total_invoices += 1, total_outstanding += total,
	// last_order_date = orderDate.
	ApplySale(customerID string, total decimal.Decimal, orderDate time.Time) error
	// AdjustOutstanding suma delta (puede ser negativo) a total_outstanding.
	AdjustOutstanding(customerID string, delta decimal.Decimal) error
	Delete(id string) error
}
