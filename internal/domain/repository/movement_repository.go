package repository

import "github.com/jassdigital/jass-inventory-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia para el kardex.
// El kardex es append-only: no existen operaciones de update ni delete.
// ListByOrganization devuelve el snapshot completo de la organización; el
// filtrado, orden y paginación son responsabilidad del consultor en memoria.
type MovementRepository interface {
	Create(movement *entity.MovementRecord) error
	GetByID(id string) (*entity.MovementRecord, error)
	ListByOrganization(organizationID string) ([]*entity.MovementRecord, error)
	CountByOrganization(organizationID string) (int64, error)
}
