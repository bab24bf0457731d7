package repository

import "github.com/tu-usuario/ledger-pro/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para Payment.
// Un pago es inmutable: solo Create y Delete (reversión completa).
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	// GetForUpdate bloquea la fila del pago; usar dentro de una transacción.
	// Dos reversiones concurrentes del mismo pago se serializan aquí: la
	// segunda ve la fila ya eliminada y recibe nil.
	GetForUpdate(id string) (*entity.Payment, error)
	ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error)
	// Delete elimina el pago; retorna ErrNotFound si la fila ya no existe.
	Delete(id string) error
}
