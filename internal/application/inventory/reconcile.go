package inventory

import (
	"context"

	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/inventory"
	"github.com/jassdigital/jass-inventory-api/pkg/logger"
)

// StockReconciler es el punto de entrada del flujo de resolución de
// incidencias: compone el cálculo de deltas con el mutador best-effort.
type StockReconciler struct {
	mutator *StockMutator
	log     *logger.Logger
}

// NewStockReconciler construye el reconciliador.
func NewStockReconciler(mutator *StockMutator, log *logger.Logger) *StockReconciler {
	return &StockReconciler{mutator: mutator, log: log}
}

// ReconcileMaterials reconcilia el stock tras editar la lista de materiales de
// una resolución. Para el registro inicial se pasa original vacío (todo es
// consumo nuevo); para una reversión completa se pasa updated vacío (todo se
// devuelve al stock). Se espera que el caller recargue el catálogo después
// para observar el estado final.
func (r *StockReconciler) ReconcileMaterials(ctx context.Context, organizationID string, original, updated []entity.MaterialUsageLine) BatchResult {
	deltas := inventory.ComputeStockDeltas(original, updated)
	if len(deltas) == 0 {
		return BatchResult{Succeeded: []string{}, Failed: []string{}, Skipped: []string{}}
	}

	result := r.mutator.ApplyStockDeltas(ctx, deltas)
	if len(result.Failed) > 0 || len(result.Skipped) > 0 {
		r.log.Warn().Str("organization_id", organizationID).
			Int("succeeded", len(result.Succeeded)).
			Int("failed", len(result.Failed)).
			Int("skipped", len(result.Skipped)).
			Msg("reconciliación de materiales con resultados parciales")
	}
	return result
}
