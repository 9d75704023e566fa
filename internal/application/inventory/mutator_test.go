package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jassdigital/jass-inventory-api/internal/application/inventory"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
	dominventory "github.com/jassdigital/jass-inventory-api/internal/domain/inventory"
	"github.com/jassdigital/jass-inventory-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

var errStorage = errors.New("fallo de almacenamiento simulado")

// fakeProductRepo catálogo en memoria, seguro para uso concurrente.
// failUpdateOn/failGetOn inyectan fallos por producto.
type fakeProductRepo struct {
	mu           sync.Mutex
	products     map[string]*entity.Product
	failUpdateOn map[string]bool
	failGetOn    map[string]bool
	updateCalls  int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:     make(map[string]*entity.Product),
		failUpdateOn: make(map[string]bool),
		failGetOn:    make(map[string]bool),
	}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failGetOn[id] {
		return nil, errStorage
	}
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByOrganizationAndCode(organizationID, code string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.OrganizationID == organizationID && p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.failUpdateOn[p.ID] {
		return errStorage
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.products {
		if p.OrganizationID == organizationID {
			cp := *p
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	require.True(t, ok, "producto %s debe existir en el fake", id)
	return p.CurrentStock
}

// fakeMovementRepo kardex en memoria, append-only.
type fakeMovementRepo struct {
	mu         sync.Mutex
	records    []*entity.MovementRecord
	failCreate bool
}

func (r *fakeMovementRepo) Create(m *entity.MovementRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errStorage
	}
	cp := *m
	r.records = append(r.records, &cp)
	return nil
}

func (r *fakeMovementRepo) GetByID(id string) (*entity.MovementRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.records {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMovementRepo) ListByOrganization(organizationID string) ([]*entity.MovementRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []*entity.MovementRecord
	for _, m := range r.records {
		if m.OrganizationID == organizationID {
			cp := *m
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *fakeMovementRepo) CountByOrganization(organizationID string) (int64, error) {
	list, _ := r.ListByOrganization(organizationID)
	return int64(len(list)), nil
}

func (r *fakeMovementRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func testProduct(id string, stock int64) *entity.Product {
	return &entity.Product{
		ID:             id,
		OrganizationID: "org-1",
		Code:           "C-" + id,
		Name:           "Producto " + id,
		UnitMeasure:    "unidad",
		UnitCost:       decimal.NewFromFloat(2.5),
		CurrentStock:   stock,
		Status:         entity.ProductStatusActive,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// StockMutator
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyStockDeltas_AplicaYPersiste(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 10), testProduct("P2", 3))
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), []dominventory.StockDelta{
		{ProductID: "P1", Delta: -4},
		{ProductID: "P2", Delta: 5},
	})

	assert.ElementsMatch(t, []string{"P1", "P2"}, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, int64(6), repo.stockOf(t, "P1"))
	assert.Equal(t, int64(8), repo.stockOf(t, "P2"))
}

// El stock nunca queda negativo: el delta se recorta en 0.
func TestApplyStockDeltas_RecortaEnCero(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 3))
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), []dominventory.StockDelta{
		{ProductID: "P1", Delta: -10},
	})

	assert.Equal(t, []string{"P1"}, result.Succeeded)
	assert.Equal(t, int64(0), repo.stockOf(t, "P1"), "el stock debe recortarse en 0, nunca negativo")
}

// Producto inexistente se omite sin afectar al resto del lote.
func TestApplyStockDeltas_ProductoInexistenteSeOmite(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 10))
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), []dominventory.StockDelta{
		{ProductID: "P1", Delta: -2},
		{ProductID: "NO-EXISTE", Delta: -5},
	})

	assert.Equal(t, []string{"P1"}, result.Succeeded)
	assert.Equal(t, []string{"NO-EXISTE"}, result.Skipped)
	assert.Empty(t, result.Failed)
	assert.Equal(t, int64(8), repo.stockOf(t, "P1"))
}

// Aislamiento de fallos parciales: el fallo de B no revierte ni bloquea a A.
func TestApplyStockDeltas_FalloParcialNoAfectaHermanos(t *testing.T) {
	repo := newFakeProductRepo(testProduct("A", 10), testProduct("B", 10))
	repo.failUpdateOn["B"] = true
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), []dominventory.StockDelta{
		{ProductID: "A", Delta: -3},
		{ProductID: "B", Delta: -3},
	})

	assert.Equal(t, []string{"A"}, result.Succeeded)
	assert.Equal(t, []string{"B"}, result.Failed)
	assert.Equal(t, int64(7), repo.stockOf(t, "A"), "A debe actualizarse aunque B falle")
	assert.Equal(t, int64(10), repo.stockOf(t, "B"), "B queda sin cambios")
}

func TestApplyStockDeltas_FalloDeLecturaCuentaComoFallo(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 10))
	repo.failGetOn["P1"] = true
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), []dominventory.StockDelta{
		{ProductID: "P1", Delta: -2},
	})

	assert.Empty(t, result.Succeeded)
	assert.Equal(t, []string{"P1"}, result.Failed)
}

func TestApplyStockDeltas_LoteVacio(t *testing.T) {
	repo := newFakeProductRepo()
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), nil)

	assert.Empty(t, result.Succeeded)
	assert.Empty(t, result.Failed)
	assert.Empty(t, result.Skipped)
}

// Lote grande: todos los deltas concurrentes se aplican y el fan-in espera a todos.
func TestApplyStockDeltas_LoteGrandeConcurrente(t *testing.T) {
	products := make([]*entity.Product, 0, 50)
	deltas := make([]dominventory.StockDelta, 0, 50)
	for i := 0; i < 50; i++ {
		id := string(rune('A'+i%26)) + "-" + string(rune('0'+i/26))
		products = append(products, testProduct(id, 100))
		deltas = append(deltas, dominventory.StockDelta{ProductID: id, Delta: -int64(i + 1)})
	}
	repo := newFakeProductRepo(products...)
	mutator := appinventory.NewStockMutator(repo, testLogger())

	result := mutator.ApplyStockDeltas(context.Background(), deltas)

	require.Len(t, result.Succeeded, 50)
	for i, d := range deltas {
		assert.Equal(t, 100+d.Delta, repo.stockOf(t, d.ProductID), "delta %d", i)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// StockReconciler (cálculo + mutación compuestos)
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcileMaterials_EdicionDeResolucion(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 10), testProduct("P2", 10), testProduct("P3", 10))
	mutator := appinventory.NewStockMutator(repo, testLogger())
	reconciler := appinventory.NewStockReconciler(mutator, testLogger())

	original := []entity.MaterialUsageLine{
		{ProductID: "P1", Quantity: 5},
		{ProductID: "P2", Quantity: 2},
	}
	updated := []entity.MaterialUsageLine{
		{ProductID: "P2", Quantity: 2},
		{ProductID: "P3", Quantity: 4},
	}

	result := reconciler.ReconcileMaterials(context.Background(), "org-1", original, updated)

	assert.ElementsMatch(t, []string{"P1", "P3"}, result.Succeeded)
	assert.Equal(t, int64(15), repo.stockOf(t, "P1"), "P1 devuelve sus 5 unidades")
	assert.Equal(t, int64(10), repo.stockOf(t, "P2"), "P2 sin cambio neto no se toca")
	assert.Equal(t, int64(6), repo.stockOf(t, "P3"), "P3 consume 4 unidades")
}

func TestReconcileMaterials_SinCambiosNoPersisteNada(t *testing.T) {
	repo := newFakeProductRepo(testProduct("P1", 10))
	mutator := appinventory.NewStockMutator(repo, testLogger())
	reconciler := appinventory.NewStockReconciler(mutator, testLogger())

	list := []entity.MaterialUsageLine{{ProductID: "P1", Quantity: 5}}
	result := reconciler.ReconcileMaterials(context.Background(), "org-1", list, list)

	assert.Empty(t, result.Succeeded)
	assert.Zero(t, repo.updateCalls, "no debe haber llamadas de persistencia en un no-op")
}
