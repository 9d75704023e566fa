package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del kardex sobre PostgreSQL (usable con pool o
// tx). La tabla no tiene UPDATE ni DELETE: solo inserción y lectura.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, organization_id, product_id, movement_type, movement_reason, quantity, unit_cost, total_value, previous_stock, new_stock, reference_document, reference_id, observations, movement_date, user_id, created_at`

// Create persiste un registro del kardex.
func (r *MovementRepo) Create(movement *entity.MovementRecord) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.OrganizationID, movement.ProductID,
		movement.Type, movement.Reason, movement.Quantity,
		movement.UnitCost, movement.TotalValue,
		movement.PreviousStock, movement.NewStock,
		nullable(movement.ReferenceDocument), nullable(movement.ReferenceID), nullable(movement.Observations),
		movement.MovementDate, movement.UserID, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *MovementRepo) GetByID(id string) (*entity.MovementRecord, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.MovementRecord
	if err := scanMovement(r.q.QueryRow(context.Background(), query, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByOrganization devuelve el snapshot completo del kardex de una
// organización, del más reciente al más antiguo. El filtrado fino es del
// consultor en memoria.
func (r *MovementRepo) ListByOrganization(organizationID string) ([]*entity.MovementRecord, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE organization_id = $1
		ORDER BY movement_date DESC`
	rows, err := r.q.Query(context.Background(), query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementRecord
	for rows.Next() {
		var m entity.MovementRecord
		if err := scanMovement(rows, &m); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByOrganization devuelve el total de registros de la organización.
func (r *MovementRepo) CountByOrganization(organizationID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM inventory_movements WHERE organization_id = $1`,
		organizationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return count, nil
}

func scanMovement(row pgx.Row, m *entity.MovementRecord) error {
	var refDoc, refID, obs *string
	err := row.Scan(
		&m.ID, &m.OrganizationID, &m.ProductID, &m.Type, &m.Reason, &m.Quantity,
		&m.UnitCost, &m.TotalValue, &m.PreviousStock, &m.NewStock,
		&refDoc, &refID, &obs, &m.MovementDate, &m.UserID, &m.CreatedAt,
	)
	if err != nil {
		return err
	}
	if refDoc != nil {
		m.ReferenceDocument = *refDoc
	}
	if refID != nil {
		m.ReferenceID = *refID
	}
	if obs != nil {
		m.Observations = *obs
	}
	return nil
}
