package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterConsumptionRequest body para POST /api/inventory/consumptions.
// previous_stock es el stock que el formulario tenía al momento de enviar.
type RegisterConsumptionRequest struct {
	ProductID         string          `json:"product_id"`
	Quantity          int64           `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Reason            string          `json:"reason"`
	PreviousStock     int64           `json:"previous_stock"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	ReferenceID       string          `json:"reference_id,omitempty"`
	Observations      string          `json:"observations,omitempty"`
}

// RegisterEntryRequest body para POST /api/inventory/entries.
type RegisterEntryRequest struct {
	ProductID         string          `json:"product_id"`
	Quantity          int64           `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	Reason            string          `json:"reason"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	ReferenceID       string          `json:"reference_id,omitempty"`
	Observations      string          `json:"observations,omitempty"`
}

// MaterialLineDTO línea de material de una resolución.
type MaterialLineDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Unit      string `json:"unit,omitempty"`
}

// ReconcileRequest body para POST /api/inventory/reconcile.
// original vacío = registro por primera vez; updated vacío = reversión total.
type ReconcileRequest struct {
	Original []MaterialLineDTO `json:"original"`
	Updated  []MaterialLineDTO `json:"updated"`
}

// BatchResultResponse partición del lote best-effort.
type BatchResultResponse struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
	Skipped   []string `json:"skipped"`
}

// MovementResponse registro del kardex en respuestas.
type MovementResponse struct {
	ID                string          `json:"id"`
	OrganizationID    string          `json:"organization_id"`
	ProductID         string          `json:"product_id"`
	Type              string          `json:"type"`
	Reason            string          `json:"reason"`
	Quantity          int64           `json:"quantity"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	TotalValue        decimal.Decimal `json:"total_value"`
	PreviousStock     int64           `json:"previous_stock"`
	NewStock          int64           `json:"new_stock"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	ReferenceID       string          `json:"reference_id,omitempty"`
	Observations      string          `json:"observations,omitempty"`
	MovementDate      time.Time       `json:"movement_date"`
	UserID            string          `json:"user_id"`
}

// MovementListResponse página del kardex. Total es el conteo tras el filtro.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}
