package entity

// MaterialUsageLine es una línea de material consumido en la resolución de una
// incidencia (value object, no se persiste por separado). Un producto puede
// repetirse dentro de la lista; el cálculo de deltas suma los duplicados.
type MaterialUsageLine struct {
	ProductID string
	Quantity  int64 // positivo
	Unit      string
}
