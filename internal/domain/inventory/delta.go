package inventory

import "github.com/jassdigital/jass-inventory-api/internal/domain/entity"

// StockDelta es el ajuste neto de stock requerido para un producto al editar
// una lista de materiales ya descontada. Delta positivo devuelve unidades al
// stock; negativo las consume.
type StockDelta struct {
	ProductID string
	Delta     int64
}

// ComputeStockDeltas calcula los deltas entre la lista de materiales original
// (ya descontada del stock) y la lista editada (la que debe quedar descontada).
// Servicio de dominio puro: determinista, sin I/O.
//
// Cada línea original suma su cantidad (se "devuelve" el consumo anterior) y
// cada línea editada la resta (nuevo consumo). Los productos con delta neto
// cero se descartan: sin persistencia y sin registro en el kardex. Para un
// registro por primera vez se pasa original vacío y todo delta sale negativo.
//
// Los productos duplicados dentro de una misma lista se suman antes de
// diferenciar, nunca se sobreescriben.
func ComputeStockDeltas(original, updated []entity.MaterialUsageLine) []StockDelta {
	net := make(map[string]int64, len(original)+len(updated))
	order := make([]string, 0, len(original)+len(updated))

	accumulate := func(productID string, qty int64) {
		if _, seen := net[productID]; !seen {
			order = append(order, productID)
		}
		net[productID] += qty
	}

	for _, line := range original {
		accumulate(line.ProductID, line.Quantity)
	}
	for _, line := range updated {
		accumulate(line.ProductID, -line.Quantity)
	}

	deltas := make([]StockDelta, 0, len(order))
	for _, productID := range order {
		if d := net[productID]; d != 0 {
			deltas = append(deltas, StockDelta{ProductID: productID, Delta: d})
		}
	}
	return deltas
}
