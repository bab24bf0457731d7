package billing

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// los repositorios de inventario y facturación (emisión de facturas).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// PaymentTxRunner ejecuta una función dentro de una transacción con los
// repositorios que tocan los pagos (registro y reversión).
type PaymentTxRunner interface {
	RunPayment(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}
