package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jassdigital/jass-inventory-api/internal/application/dto"
	"github.com/jassdigital/jass-inventory-api/internal/domain"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/inventory"
	"github.com/jassdigital/jass-inventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del catálogo. El stock solo
// cambia a través del motor de inventario; aquí nunca se modifica
// CurrentStock fuera de la creación inicial.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con código único por organización.
func (uc *ProductUseCase) Create(organizationID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.LessThan(decimal.Zero) || in.CurrentStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock < 0 || in.MaximumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumStock > 0 && in.MaximumStock > 0 && in.MinimumStock > in.MaximumStock {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByOrganizationAndCode(organizationID, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		OrganizationID: organizationID,
		Code:           in.Code,
		Name:           in.Name,
		Description:    in.Description,
		UnitMeasure:    in.UnitMeasure,
		UnitCost:       in.UnitCost,
		CurrentStock:   in.CurrentStock,
		MinimumStock:   in.MinimumStock,
		MaximumStock:   in.MaximumStock,
		Status:         entity.ProductStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Un producto de otra organización
// devuelve ErrForbidden, no se filtra silenciosamente.
func (uc *ProductUseCase) GetByID(organizationID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto de la organización del caller. No permite
// modificar CurrentStock (se maneja vía movimientos) ni el código.
func (uc *ProductUseCase) Update(organizationID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if product.OrganizationID != organizationID {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.UnitCost = *in.UnitCost
	}
	if in.MinimumStock != nil {
		product.MinimumStock = *in.MinimumStock
	}
	if in.MaximumStock != nil {
		product.MaximumStock = *in.MaximumStock
	}
	if product.MinimumStock < 0 || product.MaximumStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if product.MinimumStock > 0 && product.MaximumStock > 0 && product.MinimumStock > product.MaximumStock {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != nil {
		if !entity.ValidProductStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		product.Status = *in.Status
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por organización con paginación; cada fila sale
// anotada con su categoría de stock.
func (uc *ProductUseCase) List(organizationID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByOrganization(organizationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto de la organización del caller.
func (uc *ProductUseCase) Delete(organizationID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.OrganizationID != organizationID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		OrganizationID: p.OrganizationID,
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		UnitMeasure:    p.UnitMeasure,
		UnitCost:       p.UnitCost,
		CurrentStock:   p.CurrentStock,
		MinimumStock:   p.MinimumStock,
		MaximumStock:   p.MaximumStock,
		Status:         p.Status,
		StockStatus:    string(inventory.Classify(p)),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
