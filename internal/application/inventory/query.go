package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/jassdigital/jass-inventory-api/internal/domain"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/repository"
)

// Campos de ordenamiento soportados para el kardex.
const (
	SortByDate     = "date"
	SortByQuantity = "quantity"
	SortByUnitCost = "unit_cost"
)

// Direcciones de ordenamiento.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// MovementFilter predicados opcionales sobre el kardex. Todos los presentes
// deben cumplirse. El rango de fechas es inclusivo en ambos extremos y EndDate
// se extiende a fin de día.
type MovementFilter struct {
	ProductID string
	Type      string
	Reason    string
	StartDate *time.Time
	EndDate   *time.Time
}

// MovementSort especificación de orden.
type MovementSort struct {
	Field     string // date, quantity, unit_cost
	Direction string // asc, desc
}

// PageSpec paginación 0-indexada.
type PageSpec struct {
	Page int
	Size int
}

// MovementPage resultado paginado. Total es el conteo después del filtro,
// antes del corte de página.
type MovementPage struct {
	Items []*entity.MovementRecord
	Total int
}

// MovementQuery filtra, ordena y pagina el kardex de una organización en
// memoria: el almacén no ofrece consultas del lado del servidor, solo el
// snapshot completo.
type MovementQuery struct {
	movementRepo repository.MovementRepository
}

// NewMovementQuery construye el consultor.
func NewMovementQuery(movementRepo repository.MovementRepository) *MovementQuery {
	return &MovementQuery{movementRepo: movementRepo}
}

// QueryMovements aplica filtro, orden y paginación sobre el snapshot de la
// organización. Un filtro vacío devuelve todo (sujeto a paginación); una
// página más allá de los datos devuelve un slice vacío, no un error. La
// paginación debe venir resuelta: Size debe ser positivo y Page no negativa
// (los valores por defecto los pone el borde HTTP), si no ErrInvalidInput.
func (q *MovementQuery) QueryMovements(ctx context.Context, organizationID string, filter MovementFilter, sortSpec MovementSort, page PageSpec) (*MovementPage, error) {
	if page.Size <= 0 || page.Page < 0 {
		return nil, domain.ErrInvalidInput
	}

	records, err := q.movementRepo.ListByOrganization(organizationID)
	if err != nil {
		return nil, err
	}

	filtered := filterMovements(records, filter)
	sortMovements(filtered, sortSpec)
	total := len(filtered)

	start := page.Page * page.Size
	if start > total {
		start = total
	}
	end := start + page.Size
	if end > total {
		end = total
	}

	return &MovementPage{Items: filtered[start:end], Total: total}, nil
}

// CountMovements devuelve el total de registros del kardex de la organización.
func (q *MovementQuery) CountMovements(ctx context.Context, organizationID string) (int64, error) {
	return q.movementRepo.CountByOrganization(organizationID)
}

func filterMovements(records []*entity.MovementRecord, f MovementFilter) []*entity.MovementRecord {
	out := make([]*entity.MovementRecord, 0, len(records))
	for _, m := range records {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Type != "" && m.Type != f.Type {
			continue
		}
		if f.Reason != "" && m.Reason != f.Reason {
			continue
		}
		if f.StartDate != nil && m.MovementDate.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && m.MovementDate.After(endOfDay(*f.EndDate)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// endOfDay lleva la fecha al último instante de su día para que el límite
// superior del rango sea inclusivo.
func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// sortMovements ordena de forma estable; los empates conservan el orden del
// snapshot. Campo desconocido o vacío cae en fecha; dirección desconocida o
// vacía cae en descendente (lo más reciente primero).
func sortMovements(records []*entity.MovementRecord, s MovementSort) {
	asc := s.Direction == SortAsc

	var less func(a, b *entity.MovementRecord) bool
	switch s.Field {
	case SortByQuantity:
		less = func(a, b *entity.MovementRecord) bool { return a.Quantity < b.Quantity }
	case SortByUnitCost:
		less = func(a, b *entity.MovementRecord) bool { return a.UnitCost.LessThan(b.UnitCost) }
	default:
		less = func(a, b *entity.MovementRecord) bool { return a.MovementDate.Before(b.MovementDate) }
	}

	sort.SliceStable(records, func(i, j int) bool {
		if asc {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}
