package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate bloquea la fila de la factura; usar dentro de una transacción.
	GetForUpdate(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Invoice, error)
	// ListOpenByCustomer lista facturas con balance > 0 ordenadas por
	// due_date ascendente (lectura simple, para la vista previa).
	ListOpenByCustomer(customerID string) ([]*entity.Invoice, error)
	// ListOpenByCustomerForUpdate igual que ListOpenByCustomer pero
	// bloqueando las filas; usar dentro de la transacción de pago.
	ListOpenByCustomerForUpdate(customerID string) ([]*entity.Invoice, error)
	// UpdatePaymentState escribe paid_amount, balance_amount, status y la
	// lista de pagos de una sola vez: o cambian todos o ninguno.
	UpdatePaymentState(id string, paidAmount, balanceAmount decimal.Decimal, status string, payments []string, updatedAt time.Time) error
}
