package dto

import "github.com/shopspring/decimal"

// DashboardResponse números agregados del tablero por empresa.
type DashboardResponse struct {
	InventoryValue    decimal.Decimal `json:"inventory_value"`
	ProductCount      int64           `json:"product_count"`
	BelowReorderCount int64           `json:"below_reorder_count"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	OpenInvoices      int64           `json:"open_invoices"`
	OverdueInvoices   int64           `json:"overdue_invoices"`
}
