package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentApplicationRequest porción del pago aplicada a una factura
// específica (modo manual; en auto_apply el motor la calcula).
type PaymentApplicationRequest struct {
	InvoiceID     string          `json:"invoice_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
}

// RecordPaymentRequest body para POST /api/payments.
// Con AutoApply=true se ignora AppliedTo y el pago se distribuye entre las
// facturas abiertas del cliente (más antigua primero).
type RecordPaymentRequest struct {
	CustomerID string                      `json:"customer_id"`
	Amount     decimal.Decimal             `json:"amount"`
	Method     string                      `json:"method,omitempty"`
	Date       *time.Time                  `json:"date,omitempty"`
	AutoApply  bool                        `json:"auto_apply,omitempty"`
	AppliedTo  []PaymentApplicationRequest `json:"applied_to,omitempty"`
}

// PaymentApplicationResponse aplicación de pago en respuestas.
type PaymentApplicationResponse struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID              string                       `json:"id"`
	CompanyID       string                       `json:"company_id"`
	CustomerID      string                       `json:"customer_id"`
	Amount          decimal.Decimal              `json:"amount"`
	Method          string                       `json:"method,omitempty"`
	AppliedTo       []PaymentApplicationResponse `json:"applied_to"`
	UnappliedAmount decimal.Decimal              `json:"unapplied_amount"`
	Date            string                       `json:"date"`
}

// AllocationPreviewRequest body para POST /api/payments/preview.
type AllocationPreviewRequest struct {
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// AllocationPreviewResponse resultado de la vista previa de distribución.
type AllocationPreviewResponse struct {
	AppliedTo       []PaymentApplicationResponse `json:"applied_to"`
	UnappliedAmount decimal.Decimal              `json:"unapplied_amount"`
}
