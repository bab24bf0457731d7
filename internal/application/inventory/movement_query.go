package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// MovementQueryUseCase lecturas del historial de movimientos (sin tx).
type MovementQueryUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.InventoryTransactionRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(productRepo repository.ProductRepository, movRepo repository.InventoryTransactionRepository) *MovementQueryUseCase {
	return &MovementQueryUseCase{productRepo: productRepo, movRepo: movRepo}
}

// ListByProduct lista los movimientos de un producto de la empresa,
// opcionalmente acotados por fechas, más recientes primero.
func (uc *MovementQueryUseCase) ListByProduct(ctx context.Context, companyID, productID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

func toMovementResponse(m *entity.InventoryTransaction) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Date:        m.Date,
	}
}
