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

// EntryRegistrar registra entradas de stock (compras, devoluciones) contra el
// mismo kardex que las salidas. A diferencia del consumo no hay precondición
// de stock suficiente: el snapshot previo se lee fresco del catálogo.
type EntryRegistrar struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	log          *logger.Logger
}

// NewEntryRegistrar construye el registrador de entradas.
func NewEntryRegistrar(
	productRepo repository.ProductRepository,
	movementRepo repository.MovementRepository,
	log *logger.Logger,
) *EntryRegistrar {
	return &EntryRegistrar{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// EntryInput entrada para registrar una entrada de stock.
type EntryInput struct {
	OrganizationID    string
	ProductID         string
	Quantity          int64
	UnitCost          decimal.Decimal
	Reason            string
	ReferenceDocument string
	ReferenceID       string
	Observations      string
	UserID            string
}

// RegisterEntry escribe un registro ENTRADA en el kardex y reescribe el
// producto con el stock incrementado. Mismas dos llamadas independientes que
// el consumo (sin transacción).
func (r *EntryRegistrar) RegisterEntry(ctx context.Context, in EntryInput) (*entity.MovementRecord, error) {
	if in.OrganizationID == "" || in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.UnitCost.LessThan(decimal.Zero) {
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

	now := time.Now()
	previousStock := product.CurrentStock
	newStock := previousStock + in.Quantity
	quantity := decimal.NewFromInt(in.Quantity)

	movement := &entity.MovementRecord{
		ID:                uuid.New().String(),
		OrganizationID:    in.OrganizationID,
		ProductID:         in.ProductID,
		Type:              entity.MovementTypeEntrada,
		Reason:            in.Reason,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		TotalValue:        quantity.Mul(in.UnitCost),
		PreviousStock:     previousStock,
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
		r.log.Error().Err(err).Str("product_id", in.ProductID).
			Str("movement_id", movement.ID).
			Msg("kardex escrito pero el stock no se actualizó")
		return nil, err
	}

	r.log.Info().Str("product_id", in.ProductID).
		Str("reason", in.Reason).
		Int64("quantity", in.Quantity).
		Int64("new_stock", newStock).
		Msg("entrada registrada")
	return movement, nil
}
