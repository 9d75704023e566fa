package inventory

import (
	"context"
	"sync"
	"time"

	"github.com/jassdigital/jass-inventory-api/internal/domain/inventory"
	"github.com/jassdigital/jass-inventory-api/internal/domain/repository"
	"github.com/jassdigital/jass-inventory-api/pkg/logger"
)

// StockMutator aplica deltas de stock contra productos vivos con persistencia
// best-effort: cada producto se procesa en paralelo y el fallo de uno no
// revierte ni aborta a los demás. No es una transacción.
type StockMutator struct {
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewStockMutator construye el mutador.
func NewStockMutator(productRepo repository.ProductRepository, log *logger.Logger) *StockMutator {
	return &StockMutator{productRepo: productRepo, log: log}
}

// BatchResult particiona el lote por resultado. Skipped son productos que no
// existen en el catálogo (se omiten sin marcar fallo); Failed son fallos de
// lectura o persistencia.
type BatchResult struct {
	Succeeded []string
	Failed    []string
	Skipped   []string
}

// ApplyStockDeltas aplica cada delta de forma concurrente (fan-out) y espera a
// que todos terminen (fan-in) antes de retornar. Nunca retorna error: el caller
// debe inspeccionar la partición para decidir si avisar al usuario.
//
// Por producto: snapshot fresco, newStock = max(0, currentStock+delta),
// reescritura del registro completo. No hay bloqueo entre productos ni entre
// lotes concurrentes; la última escritura observada por el catálogo gana.
func (m *StockMutator) ApplyStockDeltas(ctx context.Context, deltas []inventory.StockDelta) BatchResult {
	result := BatchResult{
		Succeeded: []string{},
		Failed:    []string{},
		Skipped:   []string{},
	}
	if len(deltas) == 0 {
		return result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, d := range deltas {
		wg.Add(1)
		go func(d inventory.StockDelta) {
			defer wg.Done()

			product, err := m.productRepo.GetByID(d.ProductID)
			if err != nil {
				m.log.Error().Err(err).Str("product_id", d.ProductID).
					Msg("leer producto para ajuste de stock")
				mu.Lock()
				result.Failed = append(result.Failed, d.ProductID)
				mu.Unlock()
				return
			}
			if product == nil {
				m.log.Warn().Str("product_id", d.ProductID).
					Msg("producto no encontrado, se omite del lote")
				mu.Lock()
				result.Skipped = append(result.Skipped, d.ProductID)
				mu.Unlock()
				return
			}

			newStock := product.CurrentStock + d.Delta
			if newStock < 0 {
				m.log.Warn().Str("product_id", d.ProductID).
					Int64("current_stock", product.CurrentStock).
					Int64("delta", d.Delta).
					Msg("delta dejaría stock negativo, se recorta en 0")
				newStock = 0
			}
			product.CurrentStock = newStock
			product.UpdatedAt = time.Now()

			if err := m.productRepo.Update(product); err != nil {
				m.log.Error().Err(err).Str("product_id", d.ProductID).
					Int64("delta", d.Delta).
					Msg("persistir ajuste de stock")
				mu.Lock()
				result.Failed = append(result.Failed, d.ProductID)
				mu.Unlock()
				return
			}

			mu.Lock()
			result.Succeeded = append(result.Succeeded, d.ProductID)
			mu.Unlock()
		}(d)
	}
	wg.Wait()
	return result
}
