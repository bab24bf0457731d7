package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	domainbilling "github.com/tu-usuario/ledger-pro/internal/domain/billing"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// ReversePaymentUseCase deshace un pago: reconstruye el estado numérico
// previo de cada factura tocada y del agregado del cliente, y elimina el
// pago. Es la inversa exacta de RecordPayment, en una sola transacción.
type ReversePaymentUseCase struct {
	txRunner    PaymentTxRunner
	paymentRepo repository.PaymentRepository
}

// NewReversePaymentUseCase construye el caso de uso.
func NewReversePaymentUseCase(txRunner PaymentTxRunner, paymentRepo repository.PaymentRepository) *ReversePaymentUseCase {
	return &ReversePaymentUseCase{txRunner: txRunner, paymentRepo: paymentRepo}
}

// ReversePayment lee el pago, revierte cada aplicación sobre su factura
// (paid/balance/status/payments), restaura total_outstanding del cliente y
// borra el pago. Todo o nada.
//
// La reversión puede dejar una factura en overdue aunque el registro del
// pago nunca la hubiera puesto ahí: el estado se recalcula con la fecha
// actual, no con la del pago.
func (uc *ReversePaymentUseCase) ReversePayment(ctx context.Context, companyID, paymentID string) error {
	if paymentID == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()

	return uc.txRunner.RunPayment(ctx, func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// Fase de lectura: el pago se bloquea primero. Dos reversiones
		// concurrentes se serializan aquí: la segunda encuentra la fila ya
		// eliminada y retorna ErrNotFound en vez de aplicar la inversa dos veces.
		payment, err := paymentRepo.GetForUpdate(paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return domain.ErrNotFound
		}
		if payment.CompanyID != companyID {
			return domain.ErrForbidden
		}
		customer, err := customerRepo.GetForUpdate(payment.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("cliente %s del pago %s no existe", payment.CustomerID, paymentID)
		}
		// Facturas referidas, todas bloqueadas antes de escribir nada.
		// AppliedTo conserva el orden de aplicación (due_date asc en pagos
		// automáticos), el mismo orden de bloqueo del registro de pagos.
		invoicesByID := make(map[string]*entity.Invoice, len(payment.AppliedTo))
		for _, app := range payment.AppliedTo {
			inv, err := invoiceRepo.GetForUpdate(app.InvoiceID)
			if err != nil {
				return err
			}
			if inv == nil {
				return fmt.Errorf("factura %s referida por el pago %s no existe", app.InvoiceID, paymentID)
			}
			invoicesByID[inv.ID] = inv
		}

		// Fase de escritura: inversa de cada aplicación
		for _, app := range payment.AppliedTo {
			inv := invoicesByID[app.InvoiceID]
			newPaid := inv.PaidAmount.Sub(app.AmountApplied)
			newBalance := inv.Total.Sub(newPaid)
			status := domainbilling.StatusFor(newPaid, newBalance, inv.DueDate, now)
			payments := make([]string, 0, len(inv.Payments))
			for _, id := range inv.Payments {
				if id != paymentID {
					payments = append(payments, id)
				}
			}
			if err := invoiceRepo.UpdatePaymentState(inv.ID, newPaid, newBalance, status, payments, now); err != nil {
				return err
			}
		}

		if err := customerRepo.AdjustOutstanding(payment.CustomerID, payment.Amount); err != nil {
			return err
		}
		return paymentRepo.Delete(paymentID)
	})
}

// GetPayment obtiene un pago por ID (lectura simple).
func (uc *ReversePaymentUseCase) GetPayment(ctx context.Context, companyID, id string) (*dto.PaymentResponse, error) {
	payment, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	if payment.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toPaymentResponse(payment), nil
}
