package billing_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memStore guarda el estado compartido por los repos en memoria. Los fakes
// de transacción toman un snapshot antes de ejecutar fn y lo restauran si
// fn falla, imitando el Rollback de la BD.
type memStore struct {
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	invoices  map[string]*entity.Invoice
	items     map[string][]*entity.InvoiceItem
	movements []*entity.InventoryTransaction
	payments  map[string]*entity.Payment
}

func newMemStore() *memStore {
	return &memStore{
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		invoices:  make(map[string]*entity.Invoice),
		items:     make(map[string][]*entity.InvoiceItem),
		payments:  make(map[string]*entity.Payment),
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneCustomer(cu *entity.Customer) *entity.Customer {
	c := *cu
	if cu.LastOrderDate != nil {
		t := *cu.LastOrderDate
		c.LastOrderDate = &t
	}
	return &c
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.Payments = append([]string(nil), inv.Payments...)
	return &c
}

func clonePayment(p *entity.Payment) *entity.Payment {
	c := *p
	c.AppliedTo = append([]entity.PaymentApplication(nil), p.AppliedTo...)
	return &c
}

func (s *memStore) snapshot() *memStore {
	snap := newMemStore()
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for id, cu := range s.customers {
		snap.customers[id] = cloneCustomer(cu)
	}
	for id, inv := range s.invoices {
		snap.invoices[id] = cloneInvoice(inv)
	}
	for id, items := range s.items {
		snap.items[id] = append([]*entity.InvoiceItem(nil), items...)
	}
	snap.movements = append([]*entity.InventoryTransaction(nil), s.movements...)
	for id, p := range s.payments {
		snap.payments[id] = clonePayment(p)
	}
	return snap
}

func (s *memStore) restore(snap *memStore) { *s = *snap }

// ──────────────────────────────────────────────────────────────────────────────
// Repos en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return cloneProduct(p), nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *fakeProductRepo) UpdateStockAndCost(productID string, stock, averageCost, lastCost, totalValue decimal.Decimal, updatedAt time.Time) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = stock
	p.AverageCost = averageCost
	p.LastCost = lastCost
	p.TotalValue = totalValue
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListBelowReorder(companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.StockQuantity.LessThan(p.ReorderLevel) {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type fakeCustomerRepo struct{ s *memStore }

func (r *fakeCustomerRepo) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return cloneCustomer(c), nil
}

func (r *fakeCustomerRepo) GetForUpdate(id string) (*entity.Customer, error) {
	return r.GetByID(id)
}

func (r *fakeCustomerRepo) GetByCompanyAndTaxID(companyID, taxID string) (*entity.Customer, error) {
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.CompanyID == companyID {
			out = append(out, cloneCustomer(c))
		}
	}
	return out, nil
}

func (r *fakeCustomerRepo) Update(c *entity.Customer) error {
	r.s.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *fakeCustomerRepo) ApplySale(customerID string, total decimal.Decimal, orderDate time.Time) error {
	c, ok := r.s.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalSpent = c.TotalSpent.Add(total)
	c.TotalInvoices++
	c.TotalOutstanding = c.TotalOutstanding.Add(total)
	t := orderDate
	c.LastOrderDate = &t
	return nil
}

func (r *fakeCustomerRepo) AdjustOutstanding(customerID string, delta decimal.Decimal) error {
	c, ok := r.s.customers[customerID]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalOutstanding = c.TotalOutstanding.Add(delta)
	return nil
}

func (r *fakeCustomerRepo) Delete(id string) error {
	delete(r.s.customers, id)
	return nil
}

type fakeInvoiceRepo struct{ s *memStore }

func (r *fakeInvoiceRepo) Create(inv *entity.Invoice) error {
	if _, ok := r.s.invoices[inv.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.invoices {
		if other.CompanyID == inv.CompanyID && other.Number == inv.Number {
			return domain.ErrDuplicate
		}
	}
	r.s.invoices[inv.ID] = cloneInvoice(inv)
	return nil
}

func (r *fakeInvoiceRepo) CreateItem(item *entity.InvoiceItem) error {
	c := *item
	r.s.items[item.InvoiceID] = append(r.s.items[item.InvoiceID], &c)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return cloneInvoice(inv), nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error) {
	return append([]*entity.InvoiceItem(nil), r.s.items[invoiceID]...), nil
}

func (r *fakeInvoiceRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CustomerID == customerID {
			out = append(out, cloneInvoice(inv))
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListOpenByCustomer(customerID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.s.invoices {
		if inv.CustomerID == customerID && inv.BalanceAmount.GreaterThan(decimal.Zero) {
			out = append(out, cloneInvoice(inv))
		}
	}
	// Mismo orden que la consulta real: due_date, created_at.
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeInvoiceRepo) ListOpenByCustomerForUpdate(customerID string) ([]*entity.Invoice, error) {
	return r.ListOpenByCustomer(customerID)
}

func (r *fakeInvoiceRepo) UpdatePaymentState(id string, paidAmount, balanceAmount decimal.Decimal, status string, payments []string, updatedAt time.Time) error {
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.PaidAmount = paidAmount
	inv.BalanceAmount = balanceAmount
	inv.Status = status
	inv.Payments = append([]string(nil), payments...)
	inv.UpdatedAt = updatedAt
	return nil
}

type fakeMovementRepo struct{ s *memStore }

func (r *fakeMovementRepo) Create(tx *entity.InventoryTransaction) error {
	c := *tx
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, m := range r.s.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.Date.Before(*from) {
			continue
		}
		if to != nil && m.Date.After(*to) {
			continue
		}
		c := *m
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, m := range r.s.movements {
		if m.ReferenceType == referenceType && m.ReferenceID == referenceID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(p *entity.Payment) error {
	if _, ok := r.s.payments[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.payments[p.ID] = clonePayment(p)
	return nil
}

func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, nil
	}
	return clonePayment(p), nil
}

func (r *fakePaymentRepo) GetForUpdate(id string) (*entity.Payment, error) {
	return r.GetByID(id)
}

func (r *fakePaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.CustomerID == customerID {
			out = append(out, clonePayment(p))
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(id string) error {
	if _, ok := r.s.payments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.payments, id)
	return nil
}

// fakeTxRunner ejecuta fn contra el store y restaura el snapshot si falla,
// imitando Commit/Rollback.
type fakeTxRunner struct{ s *memStore }

func (t *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryTransactionRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeProductRepo{t.s}, &fakeMovementRepo{t.s}, &fakeCustomerRepo{t.s}, &fakeInvoiceRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}

func (t *fakeTxRunner) RunPayment(ctx context.Context, fn func(
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&fakeCustomerRepo{t.s}, &fakeInvoiceRepo{t.s}, &fakePaymentRepo{t.s})
	if err != nil {
		t.s.restore(snap)
	}
	return err
}
