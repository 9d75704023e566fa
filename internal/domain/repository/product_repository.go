package repository

import "github.com/jassdigital/jass-inventory-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// Update reescribe el registro completo: el colaborador no ofrece incremento
// atómico de stock, por eso el motor lee un snapshot fresco antes de escribir.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByOrganizationAndCode(organizationID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
