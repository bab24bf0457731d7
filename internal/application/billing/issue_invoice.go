package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	domainbilling "github.com/tu-usuario/ledger-pro/internal/domain/billing"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	domaininv "github.com/tu-usuario/ledger-pro/internal/domain/inventory"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

// Plazo de pago por defecto cuando el request no trae due_date.
const defaultPaymentTermDays = 30

// IssueInvoiceUseCase crea una factura y descuenta el inventario en una sola
// transacción: o se descuentan todas las líneas, se crea la factura y se
// actualizan los agregados del cliente, o no pasa nada.
type IssueInvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewIssueInvoiceUseCase construye el caso de uso.
func NewIssueInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *IssueInvoiceUseCase {
	return &IssueInvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// IssueInvoice ejecuta la emisión en cuatro fases dentro de la transacción:
// lectura (bloquea productos), validación de stock, cálculo del motor de
// costos por línea y escritura (productos, movimientos, factura, líneas y
// agregados del cliente). La primera línea sin stock aborta todo antes de
// cualquier escritura.
func (uc *IssueInvoiceUseCase) IssueInvoice(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar cliente y que sea de la empresa (solo lectura)
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	dueDate := date.AddDate(0, 0, defaultPaymentTermDays)
	if in.DueDate != nil {
		dueDate = *in.DueDate
	}
	invoiceID := uuid.New().String() // referencia de los movimientos (reference_id)

	var inv *entity.Invoice
	var items []*entity.InvoiceItem

	err = uc.txRunner.RunBilling(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryTransactionRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		// 1) Fase de lectura: bloquear cada producto una sola vez.
		productsByID := make(map[string]*entity.Product)
		for _, item := range in.Items {
			if _, ok := productsByID[item.ProductID]; ok {
				continue
			}
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.CompanyID != companyID {
				return domain.ErrForbidden
			}
			productsByID[item.ProductID] = product
		}

		// 2) Fase de validación: stock suficiente línea por línea, llevando
		// el disponible restante por producto (una factura puede repetir SKU).
		available := make(map[string]decimal.Decimal, len(productsByID))
		for id, p := range productsByID {
			available[id] = p.StockQuantity
		}
		for _, item := range in.Items {
			p := productsByID[item.ProductID]
			if available[item.ProductID].LessThan(item.Quantity) {
				return &domain.InsufficientStockError{
					ProductName: p.Name,
					Available:   available[item.ProductID],
					Requested:   item.Quantity,
				}
			}
			available[item.ProductID] = available[item.ProductID].Sub(item.Quantity)
		}

		// 3) Fase de cálculo + escritura de inventario: una salida (sale) por
		// línea al costo promedio vigente; el producto se escribe una vez con
		// su estado final.
		running := make(map[string]decimal.Decimal, len(productsByID))
		for id, p := range productsByID {
			running[id] = p.StockQuantity
		}
		var total decimal.Decimal
		for i := range in.Items {
			item := &in.Items[i]
			p := productsByID[item.ProductID]
			if item.UnitPrice.IsZero() {
				item.UnitPrice = p.Price
			}
			total = total.Add(item.Quantity.Mul(item.UnitPrice))

			stockBefore := running[item.ProductID]
			result, err := domaininv.Apply(stockBefore, p.AverageCost, domaininv.Movement{
				Type:     entity.MovementTypeSale,
				Quantity: item.Quantity.Neg(),
			})
			if err != nil {
				return err
			}
			running[item.ProductID] = result.NewStock

			mov := &entity.InventoryTransaction{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				ProductID:     item.ProductID,
				Type:          entity.MovementTypeSale,
				Quantity:      item.Quantity.Neg(),
				UnitCost:      result.LogUnitCost, // promedio vigente: COGS de la venta
				TotalCost:     item.Quantity.Neg().Mul(result.LogUnitCost),
				StockBefore:   stockBefore,
				StockAfter:    result.NewStock,
				ReferenceType: entity.ReferenceTypeInvoice,
				ReferenceID:   invoiceID,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(mov); err != nil {
				return err
			}
		}
		for id, p := range productsByID {
			finalStock := running[id]
			// Las ventas no alteran el promedio; solo stock y valor total.
			if err := productRepo.UpdateStockAndCost(id, finalStock, p.AverageCost, p.LastCost, finalStock.Mul(p.AverageCost), now); err != nil {
				return err
			}
		}

		// 4) Factura + líneas + agregados del cliente, misma transacción.
		number := in.Number
		if number == "" {
			number = fmt.Sprintf("INV-%d", now.UnixNano())
		}
		inv = &entity.Invoice{
			ID:            invoiceID,
			CompanyID:     companyID,
			CustomerID:    in.CustomerID,
			Number:        number,
			Date:          date,
			DueDate:       dueDate,
			Total:         total,
			PaidAmount:    decimal.Zero,
			BalanceAmount: total,
			Status:        domainbilling.StatusFor(decimal.Zero, total, dueDate, now),
			Payments:      []string{},
			Notes:         in.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range in.Items {
			detail := &entity.InvoiceItem{
				ID:        uuid.New().String(),
				InvoiceID: inv.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
				Subtotal:  item.Quantity.Mul(item.UnitPrice),
			}
			items = append(items, detail)
			if err := invoiceRepo.CreateItem(detail); err != nil {
				return err
			}
		}
		return customerRepo.ApplySale(in.CustomerID, total, date)
	})
	if err != nil {
		return nil, err
	}

	return toInvoiceResponse(inv, customer.Name, items), nil
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *IssueInvoiceUseCase) GetInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customer, _ := uc.customerRepo.GetByID(inv.CustomerID)
	customerName := ""
	if customer != nil {
		customerName = customer.Name
	}
	return toInvoiceResponse(inv, customerName, items), nil
}

func toInvoiceResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		Number:        inv.Number,
		Date:          inv.Date.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Total:         inv.Total,
		PaidAmount:    inv.PaidAmount,
		BalanceAmount: inv.BalanceAmount,
		Status:        inv.Status,
		Payments:      inv.Payments,
		Items:         make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, d := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        d.ID,
			ProductID: d.ProductID,
			Quantity:  d.Quantity,
			UnitPrice: d.UnitPrice,
			Subtotal:  d.Subtotal,
		})
	}
	return resp
}
