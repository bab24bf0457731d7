package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas, con sus agregados.
type CustomerResponse struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"company_id"`
	Name             string          `json:"name"`
	TaxID            string          `json:"tax_id"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	TotalSpent       decimal.Decimal `json:"total_spent"`
	TotalInvoices    int64           `json:"total_invoices"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	LastOrderDate    *time.Time      `json:"last_order_date,omitempty"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID string               `json:"customer_id"`
	Number     string               `json:"number,omitempty"` // opcional; si va vacío se genera
	Date       *time.Time           `json:"date,omitempty"`
	DueDate    *time.Time           `json:"due_date,omitempty"` // por defecto date + 30 días
	Notes      string               `json:"notes,omitempty"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemRequest línea de factura (producto, cantidad, precio unitario).
// UnitPrice en cero toma el precio de lista del producto.
type InvoiceItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	CompanyID     string                `json:"company_id"`
	CustomerID    string                `json:"customer_id"`
	CustomerName  string                `json:"customer_name,omitempty"`
	Number        string                `json:"number"`
	Date          string                `json:"date"`
	DueDate       string                `json:"due_date"`
	Total         decimal.Decimal       `json:"total"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	BalanceAmount decimal.Decimal       `json:"balance_amount"`
	Status        string                `json:"status"`
	Payments      []string              `json:"payments"`
	Items         []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
