package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el tablero.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetDashboardSummary agrega valor de inventario, cartera y facturas abiertas
// de la empresa. Usa COALESCE para devolver cero si no hay filas.
func (r *AnalyticsRepo) GetDashboardSummary(companyID string) (*repository.DashboardSummary, error) {
	const query = `
	SELECT
	    COALESCE((SELECT SUM(total_value)       FROM products  WHERE company_id = $1), 0) AS inventory_value,
	    COALESCE((SELECT COUNT(*)               FROM products  WHERE company_id = $1), 0) AS product_count,
	    COALESCE((SELECT COUNT(*)               FROM products  WHERE company_id = $1 AND stock_quantity < reorder_level), 0) AS below_reorder_count,
	    COALESCE((SELECT SUM(total_outstanding) FROM customers WHERE company_id = $1), 0) AS total_outstanding,
	    COALESCE((SELECT COUNT(*)               FROM invoices  WHERE company_id = $1 AND balance_amount > 0), 0) AS open_invoices,
	    COALESCE((SELECT COUNT(*)               FROM invoices  WHERE company_id = $1 AND status = 'overdue'), 0) AS overdue_invoices`

	var s repository.DashboardSummary
	err := r.pool.QueryRow(context.Background(), query, companyID).Scan(
		&s.InventoryValue,
		&s.ProductCount,
		&s.BelowReorderCount,
		&s.TotalOutstanding,
		&s.OpenInvoices,
		&s.OverdueInvoices,
	)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetDashboardSummary: %w", err)
	}
	return &s, nil
}
