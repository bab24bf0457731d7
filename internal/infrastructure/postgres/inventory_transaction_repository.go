package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

const movementColumns = `id, company_id, product_id, type, quantity, unit_cost, total_cost, stock_before, stock_after, reference_type, reference_id, date, created_at, created_by`

// InventoryTransactionRepo implementación del registro de movimientos
// (append-only, usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

func scanMovement(row pgx.Row) (*entity.InventoryTransaction, error) {
	var m entity.InventoryTransaction
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
		&m.TotalCost, &m.StockBefore, &m.StockAfter, &m.ReferenceType, &m.ReferenceID,
		&m.Date, &m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento de inventario.
func (r *InventoryTransactionRepo) Create(tx *entity.InventoryTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_transactions (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.CompanyID, tx.ProductID, tx.Type, tx.Quantity, tx.UnitCost,
		tx.TotalCost, tx.StockBefore, tx.StockAfter, tx.ReferenceType, tx.ReferenceID,
		tx.Date, tx.CreatedAt, tx.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *InventoryTransactionRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_transactions WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return m, nil
}

// ListByProduct lista movimientos de un producto, opcionalmente acotados por fechas.
func (r *InventoryTransactionRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_transactions
		WHERE product_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC, created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, productID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByReference lista los movimientos generados por un documento (ej. una factura).
func (r *InventoryTransactionRepo) ListByReference(referenceType, referenceID string) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_transactions
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, referenceType, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions by reference: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*entity.InventoryTransaction, error) {
	var list []*entity.InventoryTransaction
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
