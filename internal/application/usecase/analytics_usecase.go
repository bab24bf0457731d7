package usecase

import (
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// AnalyticsUseCase expone las lecturas agregadas del tablero.
type AnalyticsUseCase struct {
	repo repository.AnalyticsRepository
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(repo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{repo: repo}
}

// GetDashboard retorna el resumen del tablero de la empresa.
func (uc *AnalyticsUseCase) GetDashboard(companyID string) (*dto.DashboardResponse, error) {
	summary, err := uc.repo.GetDashboardSummary(companyID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		InventoryValue:    summary.InventoryValue,
		ProductCount:      summary.ProductCount,
		BelowReorderCount: summary.BelowReorderCount,
		TotalOutstanding:  summary.TotalOutstanding,
		OpenInvoices:      summary.OpenInvoices,
		OverdueInvoices:   summary.OverdueInvoices,
	}, nil
}
