package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	domainbilling "github.com/tu-usuario/ledger-pro/internal/domain/billing"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// RecordPaymentUseCase registra un pago de cliente y actualiza todas las
// facturas tocadas y el agregado del cliente en una sola transacción.
//
// Nota de comportamiento: total_outstanding del cliente se reduce por el
// monto COMPLETO del pago, incluido el crédito no aplicado (ver DESIGN.md,
// decisión 2 — pendiente de revisión de producto).
type RecordPaymentUseCase struct {
	txRunner     PaymentTxRunner
	customerRepo repository.CustomerRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(txRunner PaymentTxRunner, customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner, customerRepo: customerRepo, invoiceRepo: invoiceRepo}
}

// RecordPayment valida el request y ejecuta la transacción de pago:
// lectura (cliente + facturas, con bloqueo), distribución (automática vía
// el motor o manual ya validada) y escritura (facturas, agregado, pago).
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, companyID, userID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if in.CustomerID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !in.AutoApply {
		var sum decimal.Decimal
		for _, app := range in.AppliedTo {
			if app.InvoiceID == "" || !app.AmountApplied.GreaterThan(decimal.Zero) {
				return nil, domain.ErrInvalidInput
			}
			sum = sum.Add(app.AmountApplied)
		}
		// Nunca se aplica más que el monto del pago.
		if sum.GreaterThan(in.Amount) {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	paymentID := uuid.New().String()

	var payment *entity.Payment

	err := uc.txRunner.RunPayment(ctx, func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		// Fase de lectura: cliente y facturas, todas bloqueadas antes de
		// escribir nada.
		customer, err := customerRepo.GetForUpdate(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return domain.ErrForbidden
		}

		var applications []entity.PaymentApplication
		var unapplied decimal.Decimal
		invoicesByID := make(map[string]*entity.Invoice)

		if in.AutoApply {
			open, err := invoiceRepo.ListOpenByCustomerForUpdate(in.CustomerID)
			if err != nil {
				return err
			}
			openViews := make([]domainbilling.OpenInvoice, 0, len(open))
			for _, inv := range open {
				invoicesByID[inv.ID] = inv
				openViews = append(openViews, domainbilling.OpenInvoice{
					ID:      inv.ID,
					Number:  inv.Number,
					DueDate: inv.DueDate,
					Balance: inv.BalanceAmount,
				})
			}
			applications, unapplied = domainbilling.Distribute(in.Amount, openViews)
		} else {
			var sum decimal.Decimal
			for _, app := range in.AppliedTo {
				inv, err := invoiceRepo.GetForUpdate(app.InvoiceID)
				if err != nil {
					return err
				}
				if inv == nil {
					return domain.ErrNotFound
				}
				if inv.CompanyID != companyID {
					return domain.ErrForbidden
				}
				if inv.CustomerID != in.CustomerID {
					return domain.ErrInvalidInput
				}
				invoicesByID[inv.ID] = inv
				applications = append(applications, entity.PaymentApplication{
					InvoiceID:     inv.ID,
					InvoiceNumber: inv.Number,
					AmountApplied: app.AmountApplied,
				})
				sum = sum.Add(app.AmountApplied)
			}
			unapplied = in.Amount.Sub(sum)
		}

		// Fase de escritura: cada factura cambia paid/balance/status/payments
		// de una sola vez.
		for _, app := range applications {
			inv := invoicesByID[app.InvoiceID]
			newPaid := inv.PaidAmount.Add(app.AmountApplied)
			newBalance := inv.Total.Sub(newPaid)
			status := domainbilling.StatusFor(newPaid, newBalance, inv.DueDate, now)
			payments := append(append([]string{}, inv.Payments...), paymentID)
			if err := invoiceRepo.UpdatePaymentState(inv.ID, newPaid, newBalance, status, payments, now); err != nil {
				return err
			}
		}

		// Monto completo, no solo lo aplicado (comportamiento documentado).
		if err := customerRepo.AdjustOutstanding(in.CustomerID, in.Amount.Neg()); err != nil {
			return err
		}

		payment = &entity.Payment{
			ID:              paymentID,
			CompanyID:       companyID,
			CustomerID:      in.CustomerID,
			Amount:          in.Amount,
			Method:          in.Method,
			AppliedTo:       applications,
			UnappliedAmount: unapplied,
			Date:            date,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		return paymentRepo.Create(payment)
	})
	if err != nil {
		return nil, err
	}

	return toPaymentResponse(payment), nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		ID:              p.ID,
		CompanyID:       p.CompanyID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		Method:          p.Method,
		AppliedTo:       make([]dto.PaymentApplicationResponse, 0, len(p.AppliedTo)),
		UnappliedAmount: p.UnappliedAmount,
		Date:            p.Date.Format("2006-01-02"),
	}
	for _, app := range p.AppliedTo {
		resp.AppliedTo = append(resp.AppliedTo, dto.PaymentApplicationResponse{
			InvoiceID:     app.InvoiceID,
			InvoiceNumber: app.InvoiceNumber,
			AmountApplied: app.AmountApplied,
		})
	}
	return resp
}
