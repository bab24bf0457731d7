package billing

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// PaymentQueryUseCase lecturas del historial de pagos (sin tx).
type PaymentQueryUseCase struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewPaymentQueryUseCase construye el caso de uso.
func NewPaymentQueryUseCase(customerRepo repository.CustomerRepository, paymentRepo repository.PaymentRepository) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{customerRepo: customerRepo, paymentRepo: paymentRepo}
}

// ListByCustomer lista los pagos de un cliente de la empresa, más recientes primero.
func (uc *PaymentQueryUseCase) ListByCustomer(ctx context.Context, companyID, customerID string, limit, offset int) ([]*dto.PaymentResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.paymentRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPaymentResponse(p))
	}
	return out, nil
}
