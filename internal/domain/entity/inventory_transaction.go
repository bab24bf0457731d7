package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. Quantity con signo: entradas positivas,
// salidas negativas; ADJUSTMENT acepta ambos signos.
const (
	MovementTypePurchase   = "purchase"
	MovementTypeSale       = "sale"
	MovementTypeProduction = "production"
	MovementTypeAdjustment = "adjustment"
	MovementTypeReturn     = "return"
	MovementTypeDamage     = "damage"
)

// Tipos de referencia de un movimiento (documento que lo originó).
const (
	ReferenceTypeInvoice  = "invoice"
	ReferenceTypePurchase = "purchase_order"
	ReferenceTypeManual   = "manual"
)

// InventoryTransaction es el registro de auditoría de un movimiento de stock.
// Append-only: StockAfter = StockBefore + Quantity, y StockBefore debe ser
// el stock del producto al inicio de la transacción que lo escribió.
type InventoryTransaction struct {
	ID            string
	CompanyID     string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal // con signo
	UnitCost      decimal.Decimal // costo promedio vigente en salidas (COGS)
	TotalCost     decimal.Decimal
	StockBefore   decimal.Decimal
	StockAfter    decimal.Decimal
	ReferenceType string
	ReferenceID   string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
