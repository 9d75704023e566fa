package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	UnitMeasure  string          `json:"unit_measure"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	CurrentStock int64           `json:"current_stock"`
	MinimumStock int64           `json:"minimum_stock"`
	MaximumStock int64           `json:"maximum_stock"`
}

// UpdateProductRequest body para PUT /api/products/{id}. Campos nil no se
// tocan. No incluye current_stock: el stock solo cambia vía movimientos.
type UpdateProductRequest struct {
	Name         *string          `json:"name,omitempty"`
	Description  *string          `json:"description,omitempty"`
	UnitMeasure  *string          `json:"unit_measure,omitempty"`
	UnitCost     *decimal.Decimal `json:"unit_cost,omitempty"`
	MinimumStock *int64           `json:"minimum_stock,omitempty"`
	MaximumStock *int64           `json:"maximum_stock,omitempty"`
	Status       *string          `json:"status,omitempty"`
}

// ProductResponse producto en respuestas, anotado con su estado de stock.
type ProductResponse struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	UnitMeasure    string          `json:"unit_measure"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	CurrentStock   int64           `json:"current_stock"`
	MinimumStock   int64           `json:"minimum_stock"`
	MaximumStock   int64           `json:"maximum_stock"`
	Status         string          `json:"status"`
	StockStatus    string          `json:"stock_status"` // NORMAL, CRITICO, AGOTADO
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
