package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/billing"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// Dos facturas abiertas: 100 (vence primero) y 50. Outstanding 150.
func newPaymentFixture() (*memStore, *billing.RecordPaymentUseCase) {
	s := newMemStore()
	now := time.Now()
	s.customers["cli-1"] = &entity.Customer{
		ID:               "cli-1",
		CompanyID:        companyID,
		Name:             "Tienda La Esquina",
		TotalSpent:       d("150"),
		TotalInvoices:    2,
		TotalOutstanding: d("150"),
	}
	s.customers["cli-ajeno"] = &entity.Customer{
		ID:        "cli-ajeno",
		CompanyID: otherCompanyID,
		Name:      "Cliente de otra empresa",
	}
	s.invoices["fac-1"] = &entity.Invoice{
		ID:            "fac-1",
		CompanyID:     companyID,
		CustomerID:    "cli-1",
		Number:        "INV-0001",
		Date:          now.AddDate(0, 0, -20),
		DueDate:       now.AddDate(0, 0, 10),
		Total:         d("100"),
		PaidAmount:    decimal.Zero,
		BalanceAmount: d("100"),
		Status:        entity.InvoiceStatusUnpaid,
		Payments:      []string{},
		CreatedAt:     now.AddDate(0, 0, -20),
	}
	s.invoices["fac-2"] = &entity.Invoice{
		ID:            "fac-2",
		CompanyID:     companyID,
		CustomerID:    "cli-1",
		Number:        "INV-0002",
		Date:          now.AddDate(0, 0, -10),
		DueDate:       now.AddDate(0, 0, 20),
		Total:         d("50"),
		PaidAmount:    decimal.Zero,
		BalanceAmount: d("50"),
		Status:        entity.InvoiceStatusUnpaid,
		Payments:      []string{},
		CreatedAt:     now.AddDate(0, 0, -10),
	}
	uc := billing.NewRecordPaymentUseCase(&fakeTxRunner{s}, &fakeCustomerRepo{s}, &fakeInvoiceRepo{s})
	return s, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPayment — registro de pagos (auto y manual)
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPayment_AutoAplicaMasAntiguaPrimero(t *testing.T) {
	s, uc := newPaymentFixture()

	resp, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("120"),
		Method:     "transfer",
		AutoApply:  true,
	})
	require.NoError(t, err)

	require.Len(t, resp.AppliedTo, 2)
	assert.Equal(t, "fac-1", resp.AppliedTo[0].InvoiceID)
	assert.True(t, d("100").Equal(resp.AppliedTo[0].AmountApplied))
	assert.Equal(t, "fac-2", resp.AppliedTo[1].InvoiceID)
	assert.True(t, d("20").Equal(resp.AppliedTo[1].AmountApplied))
	assert.True(t, resp.UnappliedAmount.IsZero())

	// fac-1 saldada, fac-2 parcial; ambas registran el pago en su lista.
	f1 := s.invoices["fac-1"]
	assert.True(t, f1.BalanceAmount.IsZero())
	assert.Equal(t, entity.InvoiceStatusPaid, f1.Status)
	assert.Equal(t, []string{resp.ID}, f1.Payments)
	f2 := s.invoices["fac-2"]
	assert.True(t, d("20").Equal(f2.PaidAmount))
	assert.True(t, d("30").Equal(f2.BalanceAmount))
	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, f2.Status)
	assert.Equal(t, []string{resp.ID}, f2.Payments)

	// paid + balance == total en cada factura tocada.
	assert.True(t, f1.PaidAmount.Add(f1.BalanceAmount).Equal(f1.Total))
	assert.True(t, f2.PaidAmount.Add(f2.BalanceAmount).Equal(f2.Total))

	assert.True(t, d("30").Equal(s.customers["cli-1"].TotalOutstanding))
	require.Contains(t, s.payments, resp.ID)
	assert.Equal(t, userID, s.payments[resp.ID].CreatedBy)
}

// El excedente sobre las facturas abiertas queda como crédito no aplicado;
// total_outstanding baja por el monto completo del pago.
func TestRecordPayment_ExcedenteQuedaComoCredito(t *testing.T) {
	s, uc := newPaymentFixture()

	resp, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("200"),
		AutoApply:  true,
	})
	require.NoError(t, err)

	assert.True(t, d("50").Equal(resp.UnappliedAmount))
	assert.True(t, s.invoices["fac-1"].BalanceAmount.IsZero())
	assert.True(t, s.invoices["fac-2"].BalanceAmount.IsZero())
	assert.True(t, d("-50").Equal(s.customers["cli-1"].TotalOutstanding))

	// Invariante del pago: aplicado + no aplicado == monto.
	sum := resp.UnappliedAmount
	for _, app := range resp.AppliedTo {
		sum = sum.Add(app.AmountApplied)
	}
	assert.True(t, d("200").Equal(sum))
}

// Modo manual: solo cambian las facturas listadas en applied_to.
func TestRecordPayment_AplicacionManual(t *testing.T) {
	s, uc := newPaymentFixture()

	resp, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("30"),
		AppliedTo:  []dto.PaymentApplicationRequest{{InvoiceID: "fac-2", AmountApplied: d("30")}},
	})
	require.NoError(t, err)

	assert.True(t, resp.UnappliedAmount.IsZero())
	assert.Equal(t, entity.InvoiceStatusUnpaid, s.invoices["fac-1"].Status, "fac-1 no se toca")
	assert.True(t, s.invoices["fac-1"].PaidAmount.IsZero())
	assert.True(t, d("20").Equal(s.invoices["fac-2"].BalanceAmount))
	assert.True(t, d("120").Equal(s.customers["cli-1"].TotalOutstanding))
}

func TestRecordPayment_ManualConSumaMayorAlMonto(t *testing.T) {
	_, uc := newPaymentFixture()

	_, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("50"),
		AppliedTo: []dto.PaymentApplicationRequest{
			{InvoiceID: "fac-1", AmountApplied: d("40")},
			{InvoiceID: "fac-2", AmountApplied: d("20")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una factura de otro cliente en applied_to invalida el pago completo.
func TestRecordPayment_ManualConFacturaDeOtroCliente(t *testing.T) {
	s, uc := newPaymentFixture()
	now := time.Now()
	s.customers["cli-2"] = &entity.Customer{ID: "cli-2", CompanyID: companyID, Name: "Otro cliente"}
	s.invoices["fac-3"] = &entity.Invoice{
		ID: "fac-3", CompanyID: companyID, CustomerID: "cli-2", Number: "INV-0003",
		DueDate: now.AddDate(0, 0, 5), Total: d("80"), BalanceAmount: d("80"),
		Status: entity.InvoiceStatusUnpaid, Payments: []string{},
	}

	_, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("80"),
		AppliedTo:  []dto.PaymentApplicationRequest{{InvoiceID: "fac-3", AmountApplied: d("80")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.True(t, s.invoices["fac-3"].PaidAmount.IsZero(), "rollback: la factura ajena no cambió")
	assert.Empty(t, s.payments)
	assert.True(t, d("150").Equal(s.customers["cli-1"].TotalOutstanding))
}

func TestRecordPayment_ClienteDeOtraEmpresa(t *testing.T) {
	s, uc := newPaymentFixture()

	_, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-ajeno",
		Amount:     d("10"),
		AutoApply:  true,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, s.payments)
}

func TestRecordPayment_EntradasInvalidas(t *testing.T) {
	_, uc := newPaymentFixture()
	ctx := context.Background()

	_, err := uc.RecordPayment(ctx, companyID, userID, dto.RecordPaymentRequest{CustomerID: "cli-1", Amount: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto cero")

	_, err = uc.RecordPayment(ctx, companyID, userID, dto.RecordPaymentRequest{CustomerID: "", Amount: d("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente")

	_, err = uc.RecordPayment(ctx, companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("10"),
		AppliedTo:  []dto.PaymentApplicationRequest{{InvoiceID: "fac-1", AmountApplied: d("-5")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "aplicación negativa")
}

// Sin facturas abiertas el pago queda entero como crédito.
func TestRecordPayment_SinFacturasAbiertas(t *testing.T) {
	s, uc := newPaymentFixture()
	s.invoices = map[string]*entity.Invoice{}

	resp, err := uc.RecordPayment(context.Background(), companyID, userID, dto.RecordPaymentRequest{
		CustomerID: "cli-1",
		Amount:     d("40"),
		AutoApply:  true,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AppliedTo)
	assert.True(t, d("40").Equal(resp.UnappliedAmount))
	assert.True(t, d("110").Equal(s.customers["cli-1"].TotalOutstanding))
}
