package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementTypeEntrada = "ENTRADA"
	MovementTypeSalida  = "SALIDA"
	MovementTypeAjuste  = "AJUSTE"
)

// Razones de movimiento (enumeración cerrada; se valida en el borde).
const (
	ReasonCompra           = "COMPRA"
	ReasonVenta            = "VENTA"
	ReasonUsoInterno       = "USO_INTERNO"
	ReasonMerma            = "MERMA"
	ReasonAjusteInventario = "AJUSTE_INVENTARIO"
	ReasonTransferencia    = "TRANSFERENCIA"
	ReasonDevolucion       = "DEVOLUCION"
	ReasonOtro             = "OTRO"
)

// MovementRecord es un registro inmutable del kardex: una vez escrito nunca se
// actualiza ni se elimina. NewStock debe ser el resultado de aplicar Quantity
// sobre PreviousStock según Type.
type MovementRecord struct {
	ID                string
	OrganizationID    string
	ProductID         string
	Type              string // ENTRADA, SALIDA, AJUSTE
	Reason            string // COMPRA, USO_INTERNO, MERMA, ...
	Quantity          int64  // siempre positivo; el signo lo da Type
	UnitCost          decimal.Decimal
	TotalValue        decimal.Decimal // Quantity * UnitCost
	PreviousStock     int64
	NewStock          int64
	ReferenceDocument string // opcional: número de orden, acta, etc.
	ReferenceID       string // opcional: id del documento de referencia
	Observations      string
	MovementDate      time.Time
	UserID            string
	CreatedAt         time.Time
}

// ValidMovementType verifica si el tipo es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeEntrada, MovementTypeSalida, MovementTypeAjuste:
		return true
	}
	return false
}

// ValidMovementReason verifica si la razón pertenece a la enumeración cerrada.
func ValidMovementReason(r string) bool {
	switch r {
	case ReasonCompra, ReasonVenta, ReasonUsoInterno, ReasonMerma,
		ReasonAjusteInventario, ReasonTransferencia, ReasonDevolucion, ReasonOtro:
		return true
	}
	return false
}
