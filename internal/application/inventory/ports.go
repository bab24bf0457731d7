package inventory

import (
	"context"

	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la actualización
// del producto y su registro de movimiento.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryTransactionRepository,
	) error) error
}
