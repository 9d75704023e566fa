package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jassdigital/jass-inventory-api/internal/domain"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/repository"
	"github.com/jassdigital/jass-inventory-api/pkg/logger"
)

// ConsumptionRegistrar valida y registra salidas puntuales de stock (uso
// interno, merma, etc.) no atadas a la edición de una resolución.
type ConsumptionRegistrar struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	log          *logger.Logger
}

// NewConsumptionRegistrar construye el registrador.
func NewConsumptionRegistrar(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log *logger.Logger,
) *ConsumptionRegistrar {
	return &ConsumptionRegistrar{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// ConsumptionInput entrada para registrar un consumo.
// PreviousStock es el snapshot de stock que el caller tenía al enviar el
// formulario; las precondiciones se evalúan contra ese valor.
type ConsumptionInput struct {
	OrganizationID    string
	ProductID         string
	Quantity          int64
	UnitCost          decimal.Decimal
	Reason            string
	PreviousStock     int64
	ReferenceDocument string
	ReferenceID       string
	Observations      string
	UserID            string
}

// RegisterConsumption valida precondiciones, escribe un registro SALIDA en el
// kardex y reescribe el producto con newStock = previousStock - quantity.
//
// Precondiciones (sin mutación parcial si fallan):
//   - quantity > 0 y razón conocida, si no ErrInvalidInput
//   - producto existente y de la organización, si no ErrNotFound/ErrForbidden
//   - previousStock == 0 -> ErrNoStockAvailable
//   - quantity > previousStock -> ErrInsufficientStock
//
// La escritura del kardex y la del stock son dos llamadas independientes, no
// una transacción: si la segunda falla queda un registro sin stock aplicado y
// el error se propaga al caller.
func (r *ConsumptionRegistrar) RegisterConsumption(ctx context.Context, in ConsumptionInput) (*entity.MovementRecord, error) {
	if in.OrganizationID == "" || in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.PreviousStock < 0 || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementReason(in.Reason) {
		return nil, domain.ErrInvalidInput
	}

	product, err := r.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.OrganizationID != in.OrganizationID {
		return nil, domain.ErrForbidden
	}

	if in.PreviousStock == 0 {
		return nil, domain.ErrNoStockAvailable
	}
	if in.Quantity > in.PreviousStock {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now()
	newStock := in.PreviousStock - in.Quantity
	quantity := decimal.NewFromInt(in.Quantity)

	movement := &entity.MovementRecord{
		ID:                uuid.New().String(),
		OrganizationID:    in.OrganizationID,
		ProductID:         in.ProductID,
		Type:              entity.MovementTypeSalida,
		Reason:            in.Reason,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		TotalValue:        quantity.Mul(in.UnitCost),
		PreviousStock:     in.PreviousStock,
		NewStock:          newStock,
		ReferenceDocument: in.ReferenceDocument,
		ReferenceID:       in.ReferenceID,
		Observations:      in.Observations,
		MovementDate:      now,
		UserID:            in.UserID,
		CreatedAt:         now,
	}
	if err := r.movementRepo.Create(movement); err != nil {
		return nil, err
	}

	product.CurrentStock = newStock
	product.UpdatedAt = now
	if err := r.productRepo.Update(product); err != nil {
		// Riesgo de inconsistencia conocido: el kardex ya tiene el registro
		// pero el stock no se aplicó. No hay transacción compensatoria.
		r.log.Error().Err(err).Str("product_id", in.ProductID).
			Str("movement_id", movement.ID).
			Msg("kardex escrito pero el stock no se actualizó")
		return nil, err
	}

	r.log.Info().Str("product_id", in.ProductID).
		Str("reason", in.Reason).
		Int64("quantity", in.Quantity).
		Int64("new_stock", newStock).
		Msg("consumo registrado")
	return movement, nil
}
