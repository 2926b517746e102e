package handler

import (
	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/pkg/format"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	catalog *catalog.Catalog
}

func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GetStores returns every store
// GET /api/v1/catalog/stores
func (h *CatalogHandler) GetStores(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Stores())
}

// GetCategories returns the nested product table
// GET /api/v1/catalog/categories
func (h *CatalogHandler) GetCategories(c *fiber.Ctx) error {
	return c.JSON(h.catalog.Categories())
}

// GetProducts lists sellable products
// Query params: category (default all)
func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	category := c.Query("category", "all")
	return c.JSON(fiber.Map{
		"category": category,
		"data":     h.catalog.Products(category),
	})
}

// GetFlavors lists liquide flavors
// Query params: group (all, gourmet, fruite)
func (h *CatalogHandler) GetFlavors(c *fiber.Ctx) error {
	group := c.Query("group", "all")
	return c.JSON(fiber.Map{
		"group": group,
		"data":  h.catalog.LiquideFlavors(group),
	})
}

// GetPuffModels lists the puff names offered on sale forms
// GET /api/v1/catalog/puffs
func (h *CatalogHandler) GetPuffModels(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.catalog.PuffModels()})
}

// GetPrice resolves the category and unit price of a product name.
// Unknown names are not an error: they price at zero in category "unknown".
func (h *CatalogHandler) GetPrice(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(400).JSON(fiber.Map{"error": "name is required"})
	}
	price := h.catalog.PriceOf(name)
	return c.JSON(fiber.Map{
		"name":          name,
		"category":      h.catalog.CategoryOf(name),
		"price":         price,
		"price_display": format.Currency(price),
	})
}

// GetReference returns the id-to-name tables
// GET /api/v1/catalog/reference
func (h *CatalogHandler) GetReference(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"product_types": h.catalog.ProductTypes(),
		"materials":     h.catalog.Materials(),
		"income_types":  h.catalog.IncomeTypes(),
	})
}

// GetRoles returns the roles and what they may do
// GET /api/v1/catalog/roles
func (h *CatalogHandler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(model.DefaultRoles)
}

func (h *CatalogHandler) storeLabel(id model.StoreID) string {
	if name := h.catalog.StoreName(id); name != catalog.UnknownStore {
		return name
	}
	return format.StoreDisplayName(string(id))
}
