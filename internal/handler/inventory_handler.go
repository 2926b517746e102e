package handler

import (
	"context"

	"store-ledger/internal/model"
	"store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	rows, err := h.service.ListProducts(c.UserContext(), session, model.ParseScope(c.Query("store")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) GetMaterials(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	rows, err := h.service.ListMaterials(c.UserContext(), session, model.ParseScope(c.Query("store")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.InventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.CreateProduct(c.UserContext(), session, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product added to inventory", "data": row})
}

func (h *InventoryHandler) CreateMaterial(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	var req service.MaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	row, err := h.service.CreateMaterial(c.UserContext(), session, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Material added to inventory", "data": row})
}

// AdjustStock sets quantity and/or min_quantity of one row
// PATCH /api/v1/inventory/:collection/:id
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	collection, err := service.ParseStockCollection(c.Params("collection"))
	if err != nil {
		return respondError(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	var req service.StockAdjustment
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	var row interface{}
	if collection == service.StockProducts {
		row, err = h.service.AdjustProduct(c.UserContext(), session, id, &req)
	} else {
		row, err = h.service.AdjustMaterial(c.UserContext(), session, id, &req)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated", "data": row})
}

type stockValue struct {
	Value *int `json:"value"`
}

// SetQuantity overwrites the quantity of one row
// PUT /api/v1/inventory/:collection/:id/quantity
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	return h.setStock(c, h.service.SetQuantity)
}

// SetMinQuantity overwrites the minimum quantity of one row
// PUT /api/v1/inventory/:collection/:id/min-quantity
func (h *InventoryHandler) SetMinQuantity(c *fiber.Ctx) error {
	return h.setStock(c, h.service.SetMinQuantity)
}

type stockSetter func(ctx context.Context, session model.Session, collection service.StockCollection, id int64, value int) error

func (h *InventoryHandler) setStock(c *fiber.Ctx, set stockSetter) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	collection, err := service.ParseStockCollection(c.Params("collection"))
	if err != nil {
		return respondError(c, err)
	}
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid stock ID"})
	}

	var req stockValue
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Value == nil {
		return c.Status(400).JSON(fiber.Map{"error": "value is required"})
	}

	if err := set(c.UserContext(), session, collection, id, *req.Value); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock updated"})
}

// GetMissing lists products and materials at or below their minimum
// Query params: store
func (h *InventoryHandler) GetMissing(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	report, err := h.service.Missing(c.UserContext(), session, model.ParseScope(c.Query("store")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
