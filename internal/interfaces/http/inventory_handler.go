package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jassdigital/jass-inventory-api/internal/application/dto"
	appinventory "github.com/jassdigital/jass-inventory-api/internal/application/inventory"
	"github.com/jassdigital/jass-inventory-api/internal/domain"
	"github.com/jassdigital/jass-inventory-api/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario
// (protegido): consumos, entradas, reconciliación y consulta del kardex.
type InventoryHandler struct {
	consumption *appinventory.ConsumptionRegistrar
	entry       *appinventory.EntryRegistrar
	reconciler  *appinventory.StockReconciler
	query       *appinventory.MovementQuery
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	consumption *appinventory.ConsumptionRegistrar,
	entry *appinventory.EntryRegistrar,
	reconciler *appinventory.StockReconciler,
	query *appinventory.MovementQuery,
) *InventoryHandler {
	return &InventoryHandler{
		consumption: consumption,
		entry:       entry,
		reconciler:  reconciler,
		query:       query,
	}
}

// RegisterConsumption godoc
// @Summary      Registrar consumo interno de un producto
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterConsumptionRequest  true  "product_id, quantity, unit_cost, reason, previous_stock"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) RegisterConsumption(c *fiber.Ctx) error {
	organizationID, userID := GetOrganizationID(c), GetUserID(c)
	if organizationID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.consumption.RegisterConsumption(c.Context(), appinventory.ConsumptionInput{
		OrganizationID:    organizationID,
		ProductID:         in.ProductID,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		Reason:            in.Reason,
		PreviousStock:     in.PreviousStock,
		ReferenceDocument: in.ReferenceDocument,
		ReferenceID:       in.ReferenceID,
		Observations:      in.Observations,
		UserID:            userID,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// RegisterEntry godoc
// @Summary      Registrar entrada de stock (compra, devolución)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEntryRequest  true  "product_id, quantity, unit_cost, reason"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) RegisterEntry(c *fiber.Ctx) error {
	organizationID, userID := GetOrganizationID(c), GetUserID(c)
	if organizationID == "" || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movement, err := h.entry.RegisterEntry(c.Context(), appinventory.EntryInput{
		OrganizationID:    organizationID,
		ProductID:         in.ProductID,
		Quantity:          in.Quantity,
		UnitCost:          in.UnitCost,
		Reason:            in.Reason,
		ReferenceDocument: in.ReferenceDocument,
		ReferenceID:       in.ReferenceID,
		Observations:      in.Observations,
		UserID:            userID,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(movement))
}

// Reconcile godoc
// @Summary      Reconciliar stock tras editar los materiales de una resolución
// @Description  Calcula los deltas entre la lista original y la editada y los
//
//	aplica en paralelo, best-effort. Responde la partición del lote.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReconcileRequest  true  "listas original y editada de materiales"
// @Success      200   {object}  dto.BatchResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile [post]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.ReconcileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	original, err := toMaterialLines(in.Original)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidades deben ser positivas"})
	}
	updated, err := toMaterialLines(in.Updated)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidades deben ser positivas"})
	}
	result := h.reconciler.ReconcileMaterials(c.Context(), organizationID, original, updated)
	return c.JSON(dto.BatchResultResponse{
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
		Skipped:   result.Skipped,
	})
}

// ListMovements godoc
// @Summary      Consultar el kardex de la organización
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "ENTRADA | SALIDA | AJUSTE"
// @Param        reason      query  string  false  "COMPRA, USO_INTERNO, MERMA, ..."
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive, fin de día)"
// @Param        sort_by     query  string  false  "date | quantity | unit_cost"  default(date)
// @Param        direction   query  string  false  "asc | desc"  default(desc)
// @Param        page        query  int     false  "Página 0-indexada"  default(0)
// @Param        size        query  int     false  "Tamaño de página"   default(20)
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}

	filter := appinventory.MovementFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Reason:    c.Query("reason"),
	}
	if filter.Type != "" && !entity.ValidMovementType(filter.Type) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de movimiento desconocido"})
	}
	if filter.Reason != "" && !entity.ValidMovementReason(filter.Reason) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "razón de movimiento desconocida"})
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date debe ser YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date debe ser YYYY-MM-DD"})
		}
		filter.EndDate = &t
	}

	sortSpec := appinventory.MovementSort{
		Field:     c.Query("sort_by", appinventory.SortByDate),
		Direction: c.Query("direction", appinventory.SortDesc),
	}
	switch sortSpec.Field {
	case appinventory.SortByDate, appinventory.SortByQuantity, appinventory.SortByUnitCost:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "sort_by debe ser date, quantity o unit_cost"})
	}
	switch sortSpec.Direction {
	case appinventory.SortAsc, appinventory.SortDesc:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "direction debe ser asc o desc"})
	}

	page := appinventory.PageSpec{
		Page: c.QueryInt("page", 0),
		Size: c.QueryInt("size", 20),
	}
	if page.Size <= 0 || page.Page < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "page debe ser >= 0 y size > 0"})
	}
	if page.Size > 100 {
		page.Size = 100
	}

	result, err := h.query.QueryMovements(c.Context(), organizationID, filter, sortSpec, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	items := make([]dto.MovementResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, toMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Total: result.Total})
}

// CountMovements godoc
// @Summary      Total de registros del kardex de la organización
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/inventory/movements/count [get]
func (h *InventoryHandler) CountMovements(c *fiber.Ctx) error {
	organizationID := GetOrganizationID(c)
	if organizationID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	count, err := h.query.CountMovements(c.Context(), organizationID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": count})
}

func toMaterialLines(in []dto.MaterialLineDTO) ([]entity.MaterialUsageLine, error) {
	lines := make([]entity.MaterialUsageLine, 0, len(in))
	for _, l := range in {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.MaterialUsageLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
		})
	}
	return lines, nil
}

func toMovementResponse(m *entity.MovementRecord) dto.MovementResponse {
	return dto.MovementResponse{
		ID:                m.ID,
		OrganizationID:    m.OrganizationID,
		ProductID:         m.ProductID,
		Type:              m.Type,
		Reason:            m.Reason,
		Quantity:          m.Quantity,
		UnitCost:          m.UnitCost,
		TotalValue:        m.TotalValue,
		PreviousStock:     m.PreviousStock,
		NewStock:          m.NewStock,
		ReferenceDocument: m.ReferenceDocument,
		ReferenceID:       m.ReferenceID,
		Observations:      m.Observations,
		MovementDate:      m.MovementDate,
		UserID:            m.UserID,
	}
}

// movementError mapea errores de dominio del motor a códigos HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrNoStockAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "NO_STOCK", Message: "el producto no tiene stock disponible"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
