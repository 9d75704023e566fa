package http

import (
	"github.com/gofiber/fiber/v2"
	appinventory "github.com/jassdigital/jass-inventory-api/internal/application/inventory"
	"github.com/jassdigital/jass-inventory-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *usecase.ProductUseCase
	Consumption   *appinventory.ConsumptionRegistrar
	Entry         *appinventory.EntryRegistrar
	Reconciler    *appinventory.StockReconciler
	MovementQuery *appinventory.MovementQuery
	JWTSecret     string
}

// Router registra las rutas de la API. Todas requieren Bearer Token; los
// tokens los emite el servicio de autenticación central de la JASS.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole("admin", "almacenero"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin", "almacenero"), productHandler.Update)
	products.Delete("/:id", RequireRole("admin"), productHandler.Delete)

	// Inventory: movimientos y reconciliación (protegido)
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Consumption, deps.Entry, deps.Reconciler, deps.MovementQuery)
	inv.Post("/consumptions", RequireRole("admin", "almacenero", "operador"), inventoryHandler.RegisterConsumption)
	inv.Post("/entries", RequireRole("admin", "almacenero"), inventoryHandler.RegisterEntry)
	inv.Post("/reconcile", RequireRole("admin", "almacenero", "operador"), inventoryHandler.Reconcile)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/count", inventoryHandler.CountMovements)
}
