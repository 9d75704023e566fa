package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	"github.com/jassdigital/jass-inventory-api/internal/domain/inventory"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		name     string
		current  int64
		minimum  int64
		expected inventory.StockStatus
	}{
		{"stock cero es AGOTADO", 0, 5, inventory.StatusAgotado},
		{"stock cero sin mínimo también es AGOTADO", 0, 0, inventory.StatusAgotado},
		{"stock igual al mínimo es CRITICO", 5, 5, inventory.StatusCritico},
		{"stock debajo del mínimo es CRITICO", 3, 5, inventory.StatusCritico},
		{"stock justo encima del mínimo es NORMAL", 6, 5, inventory.StatusNormal},
		{"sin mínimo configurado es NORMAL", 1, 0, inventory.StatusNormal},
		{"stock holgado es NORMAL", 100, 5, inventory.StatusNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, inventory.ClassifyStock(tc.current, tc.minimum))
		})
	}
}

func TestClassify_Producto(t *testing.T) {
	p := &entity.Product{CurrentStock: 2, MinimumStock: 4}
	assert.Equal(t, inventory.StatusCritico, inventory.Classify(p))
}
