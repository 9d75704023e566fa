package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive       = "ACTIVE"
	ProductStatusInactive     = "INACTIVE"
	ProductStatusDiscontinued = "DISCONTINUED"
)

// Product representa un material del almacén de la JASS.
// CurrentStock solo se modifica a través del motor de inventario (movimientos
// y reconciliación); el CRUD de productos nunca lo toca.
type Product struct {
	ID             string
	OrganizationID string
	Code           string // código único por organización
	Name           string
	Description    string
	UnitMeasure    string          // unidad de medida (ej. "unidad", "metro", "kg")
	UnitCost       decimal.Decimal // costo unitario, >= 0
	CurrentStock   int64           // nunca negativo; el motor recorta en 0
	MinimumStock   int64           // 0 = sin mínimo configurado
	MaximumStock   int64           // 0 = sin máximo configurado
	Status         string          // ACTIVE, INACTIVE, DISCONTINUED
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidProductStatus verifica si el estado es uno de los conocidos.
func ValidProductStatus(s string) bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}
