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

// CustomerUseCase casos de uso para clientes (facturación).
type CustomerUseCase struct {
	repo        repository.CustomerRepository
	invoiceRepo repository.InvoiceRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// Create crea un nuevo cliente con agregados en cero.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndTaxID(companyID, in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		Name:             in.Name,
		TaxID:            in.TaxID,
		Email:            in.Email,
		Phone:            in.Phone,
		TotalSpent:       decimal.Zero,
		TotalInvoices:    0,
		TotalOutstanding: decimal.Zero,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Get obtiene un cliente de la empresa.
func (uc *CustomerUseCase) Get(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// OpenInvoices lista las facturas abiertas del cliente, due_date ascendente.
func (uc *CustomerUseCase) OpenInvoices(ctx context.Context, companyID, customerID string) ([]*dto.InvoiceResponse, error) {
	customer, err := uc.repo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	open, err := uc.invoiceRepo.ListOpenByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(open))
	for _, inv := range open {
		out = append(out, toInvoiceResponse(inv, customer.Name, nil))
	}
	return out, nil
}

// PreviewAllocation ejecuta el motor de distribución sin efectos: muestra
// cómo quedaría repartido un pago entre las facturas abiertas del cliente.
// Mismo motor que usa RecordPayment con auto_apply, mismos resultados.
func (uc *CustomerUseCase) PreviewAllocation(ctx context.Context, companyID string, in dto.AllocationPreviewRequest) (*dto.AllocationPreviewResponse, error) {
	if in.CustomerID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.repo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	open, err := uc.invoiceRepo.ListOpenByCustomer(in.CustomerID)
	if err != nil {
		return nil, err
	}
	views := make([]domainbilling.OpenInvoice, 0, len(open))
	for _, inv := range open {
		views = append(views, domainbilling.OpenInvoice{
			ID:      inv.ID,
			Number:  inv.Number,
			DueDate: inv.DueDate,
			Balance: inv.BalanceAmount,
		})
	}
	applied, unapplied := domainbilling.Distribute(in.Amount, views)
	resp := &dto.AllocationPreviewResponse{
		AppliedTo:       make([]dto.PaymentApplicationResponse, 0, len(applied)),
		UnappliedAmount: unapplied,
	}
	for _, app := range applied {
		resp.AppliedTo = append(resp.AppliedTo, dto.PaymentApplicationResponse{
			InvoiceID:     app.InvoiceID,
			InvoiceNumber: app.InvoiceNumber,
			AmountApplied: app.AmountApplied,
		})
	}
	return resp, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:               c.ID,
		CompanyID:        c.CompanyID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		Email:            c.Email,
		Phone:            c.Phone,
		TotalSpent:       c.TotalSpent,
		TotalInvoices:    c.TotalInvoices,
		TotalOutstanding: c.TotalOutstanding,
		LastOrderDate:    c.LastOrderDate,
	}
}
