package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	domaininv "github.com/tu-usuario/ledger-pro/internal/domain/inventory"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// AdjustStockUseCase registra movimientos de inventario de forma
// transaccional (purchase, production, adjustment, return, damage) con
// bloqueo de fila y Commit/Rollback. Las ventas no pasan por aquí: las
// descuenta la emisión de facturas.
type AdjustStockUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, productRepo: productRepo}
}

// AdjustStockInput entrada para registrar un movimiento de inventario.
// Quantity con signo; UnitCost obligatorio en purchase y production.
type AdjustStockInput struct {
	CompanyID     string
	UserID        string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
}

// AdjustStock valida el movimiento, inicia una transacción, bloquea la fila
// del producto, aplica el motor de costo promedio y persiste producto +
// registro de auditoría juntos. Devuelve el movimiento registrado.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, input AdjustStockInput) (*dto.MovementResponse, error) {
	if input.ProductID == "" || input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !domaininv.ValidMovementType(input.Type) || input.Type == entity.MovementTypeSale {
		return nil, domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypePurchase, entity.MovementTypeProduction:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeReturn:
		if !input.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeDamage:
		if !input.Quantity.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	if input.UnitCost != nil && input.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	// Validar que el producto exista y sea de la empresa (solo lectura)
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != input.CompanyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	refType := input.ReferenceType
	if refType == "" {
		refType = entity.ReferenceTypeManual
	}

	var mov *entity.InventoryTransaction

	// Inicia transacción; Commit si todo ok, Rollback si algo falla
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryTransactionRepository,
	) error {
		// Fase de lectura: bloquea la fila del producto
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if locked.CompanyID != input.CompanyID {
			return domain.ErrForbidden
		}

		result, err := domaininv.Apply(locked.StockQuantity, locked.AverageCost, domaininv.Movement{
			Type:     input.Type,
			Quantity: input.Quantity,
			UnitCost: input.UnitCost,
		})
		if err == domain.ErrInsufficientStock {
			return &domain.InsufficientStockError{
				ProductName: locked.Name,
				Available:   locked.StockQuantity,
				Requested:   input.Quantity.Neg(),
			}
		}
		if err != nil {
			return err
		}

		lastCost := locked.LastCost
		if input.Quantity.GreaterThan(decimal.Zero) && input.UnitCost != nil {
			lastCost = *input.UnitCost
		}
		if err := productRepo.UpdateStockAndCost(locked.ID, result.NewStock, result.NewAverageCost, lastCost, result.NewTotalValue, now); err != nil {
			return err
		}

		mov = &entity.InventoryTransaction{
			ID:            uuid.New().String(),
			CompanyID:     input.CompanyID,
			ProductID:     locked.ID,
			Type:          input.Type,
			Quantity:      input.Quantity,
			UnitCost:      result.LogUnitCost,
			TotalCost:     input.Quantity.Mul(result.LogUnitCost),
			StockBefore:   locked.StockQuantity,
			StockAfter:    result.NewStock,
			ReferenceType: refType,
			ReferenceID:   input.ReferenceID,
			Date:          now,
			CreatedAt:     now,
			CreatedBy:     input.UserID,
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}

	return &dto.MovementResponse{
		ID:          mov.ID,
		ProductID:   mov.ProductID,
		Type:        mov.Type,
		Quantity:    mov.Quantity,
		UnitCost:    mov.UnitCost,
		TotalCost:   mov.TotalCost,
		StockBefore: mov.StockBefore,
		StockAfter:  mov.StockAfter,
		Date:        mov.Date,
	}, nil
}

// AdjustStockFromRequest adapta el request HTTP al caso de uso.
func (uc *AdjustStockUseCase) AdjustStockFromRequest(ctx context.Context, companyID, userID string, in dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	return uc.AdjustStock(ctx, AdjustStockInput{
		CompanyID:     companyID,
		UserID:        userID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
	})
}
