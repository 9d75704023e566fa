package inventory

import "github.com/jassdigital/jass-inventory-api/internal/domain/entity"

// StockStatus es la categoría de salud del stock de un producto.
type StockStatus string

// Categorías de stock.
const (
	StatusNormal  StockStatus = "NORMAL"
	StatusCritico StockStatus = "CRITICO"
	StatusAgotado StockStatus = "AGOTADO"
)

// ClassifyStock clasifica el stock actual contra el mínimo configurado
// (servicio de dominio puro):
//
//	AGOTADO  cuando currentStock == 0 (sin importar los límites)
//	CRITICO  cuando 0 < currentStock <= minimumStock y minimumStock > 0
//	NORMAL   en cualquier otro caso
func ClassifyStock(currentStock, minimumStock int64) StockStatus {
	if currentStock == 0 {
		return StatusAgotado
	}
	if minimumStock > 0 && currentStock <= minimumStock {
		return StatusCritico
	}
	return StatusNormal
}

// Classify clasifica el stock de un producto.
func Classify(p *entity.Product) StockStatus {
	return ClassifyStock(p.CurrentStock, p.MinimumStock)
}
