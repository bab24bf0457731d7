package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Stock y costos se mutan solo vía UpdateStockAndCost dentro de una
// transacción que leyó la fila con GetForUpdate.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE);
	// usar solo dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStockAndCost escribe el resultado del motor de costos:
	// stock, promedio, último costo y valor total, de una sola vez.
	UpdateStockAndCost(productID string, stock, averageCost, lastCost, totalValue decimal.Decimal, updatedAt time.Time) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	// ListBelowReorder lista productos con stock bajo el punto de reorden.
	ListBelowReorder(companyID string) ([]*entity.Product, error)
	Delete(id string) error
}
