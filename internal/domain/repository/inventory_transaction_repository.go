package repository

import (
	"time"

	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto de persistencia para el
// registro de movimientos de inventario (append-only, sin updates).
type InventoryTransactionRepository interface {
	Create(tx *entity.InventoryTransaction) error
	GetByID(id string) (*entity.InventoryTransaction, error)
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)
	ListByReference(referenceType, referenceID string) ([]*entity.InventoryTransaction, error)
}
