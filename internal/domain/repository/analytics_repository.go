package repository

import "github.com/shopspring/decimal"

// DashboardSummary agrega los números del tablero por empresa.
// Son lecturas filtradas simples, sin invariantes propios.
type DashboardSummary struct {
	InventoryValue    decimal.Decimal // sum(products.total_value)
	ProductCount      int64
	BelowReorderCount int64
	TotalOutstanding  decimal.Decimal // sum(customers.total_outstanding)
	OpenInvoices      int64
	OverdueInvoices   int64
}

// AnalyticsRepository define el puerto de lecturas agregadas para el dashboard.
type AnalyticsRepository interface {
	GetDashboardSummary(companyID string) (*DashboardSummary, error)
}
