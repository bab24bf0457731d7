package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// StockQuantity y AverageCost se mutan solo vía movimientos transaccionales;
// TotalValue = StockQuantity * AverageCost se mantiene como columna materializada.
type Product struct {
	ID            string
	CompanyID     string
	SKU           string // código único por empresa
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta
	StockQuantity decimal.Decimal // nunca negativo tras un commit
	AverageCost   decimal.Decimal // costo promedio ponderado (inicia en 0)
	LastCost      decimal.Decimal // último costo de entrada registrado
	TotalValue    decimal.Decimal // StockQuantity * AverageCost
	ReorderLevel  decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
