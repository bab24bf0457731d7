package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentColumns = `id, company_id, customer_id, amount, method, applied_to, unapplied_amount, date, created_at, created_by`

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
// La columna applied_to es jsonb con la lista de aplicaciones del pago.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var appliedTo []byte
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.CustomerID, &p.Amount, &p.Method,
		&appliedTo, &p.UnappliedAmount, &p.Date, &p.CreatedAt, &p.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	if len(appliedTo) > 0 {
		if err := json.Unmarshal(appliedTo, &p.AppliedTo); err != nil {
			return nil, fmt.Errorf("decode applied_to: %w", err)
		}
	}
	if p.AppliedTo == nil {
		p.AppliedTo = []entity.PaymentApplication{}
	}
	return &p, nil
}

// Create persiste un nuevo pago.
func (r *PaymentRepo) Create(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	appliedTo, err := json.Marshal(payment.AppliedTo)
	if err != nil {
		return fmt.Errorf("encode applied_to: %w", err)
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		payment.ID, payment.CompanyID, payment.CustomerID, payment.Amount, payment.Method,
		appliedTo, payment.UnappliedAmount, payment.Date, payment.CreatedAt, payment.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago por ID.
func (r *PaymentRepo) GetByID(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene un pago bloqueando la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción.
func (r *PaymentRepo) GetForUpdate(id string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment for update: %w", err)
	}
	return p, nil
}

// ListByCustomer lista pagos del cliente, más recientes primero.
func (r *PaymentRepo) ListByCustomer(customerID string, limit, offset int) ([]*entity.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments WHERE customer_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un pago (reversión completa). Si la fila ya no existe
// (otra transacción la revirtió) retorna ErrNotFound.
func (r *PaymentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
