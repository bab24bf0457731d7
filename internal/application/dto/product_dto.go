package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
// Stock y costos inician en 0; se alimentan solo vía movimientos.
type CreateProductRequest struct {
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	AverageCost   decimal.Decimal `json:"average_cost"`
	LastCost      decimal.Decimal `json:"last_cost"`
	TotalValue    decimal.Decimal `json:"total_value"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
}
