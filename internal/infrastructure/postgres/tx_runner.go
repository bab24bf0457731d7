package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ledger-pro/internal/application/billing"
	"github.com/tu-usuario/ledger-pro/internal/application/inventory"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)
var _ billing.PaymentTxRunner = (*TxRunner)(nil)

// maxTxAttempts reintentos ante serialization_failure/deadlock antes de
// rendirse con domain.ErrConflict.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Los conflictos de concurrencia (40001/40P01) se reintentan hasta
// maxTxAttempts veces; si persisten, retorna domain.ErrConflict.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// runWithRetry inicia una transacción, ejecuta fn y hace Commit o Rollback.
// fn debe ser re-ejecutable: en cada intento recibe una tx nueva.
func (r *TxRunner) runWithRetry(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run ejecuta fn con los repos de inventario atados a una transacción.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryTransactionRepository,
) error) error {
	return r.runWithRetry(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewInventoryTransactionRepository(tx))
	})
}

// RunBilling ejecuta fn con los repos de inventario y facturación atados a
// una transacción (emisión de facturas).
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryTransactionRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	return r.runWithRetry(ctx, func(tx pgx.Tx) error {
		return fn(
			NewProductRepository(tx),
			NewInventoryTransactionRepository(tx),
			NewCustomerRepository(tx),
			NewInvoiceRepository(tx),
		)
	})
}

// RunPayment ejecuta fn con los repos de pagos atados a una transacción
// (registro y reversión de pagos).
func (r *TxRunner) RunPayment(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	return r.runWithRetry(ctx, func(tx pgx.Tx) error {
		return fn(
			NewCustomerRepository(tx),
			NewInvoiceRepository(tx),
			NewPaymentRepository(tx),
		)
	})
}
