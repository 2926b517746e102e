package handler

import (
	"store-ledger/internal/middleware"
	"store-ledger/internal/model"
	"store-ledger/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
)

// NewApp creates the fiber app with the JSON codec used across the service
func NewApp(name string) *fiber.App {
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	return fiber.New(fiber.Config{
		AppName:     name,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
}

type Handlers struct {
	Catalog   *CatalogHandler
	Ledger    *LedgerHandler
	Inventory *InventoryHandler
	Dashboard *DashboardHandler
}

// SetupRoutes mounts the API under /api/v1 and the websocket under /ws
func SetupRoutes(app *fiber.App, h Handlers, tokens middleware.TokenValidator, hub *ws.Hub) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireSession(tokens))

	// Catalog Routes
	catalog := protected.Group("/catalog", middleware.RequirePrivilege(model.PrivCatalogView))
	catalog.Get("/stores", h.Catalog.GetStores)
	catalog.Get("/categories", h.Catalog.GetCategories)
	catalog.Get("/products", h.Catalog.GetProducts)
	catalog.Get("/flavors", h.Catalog.GetFlavors)
	catalog.Get("/puffs", h.Catalog.GetPuffModels)
	catalog.Get("/price", h.Catalog.GetPrice)
	catalog.Get("/reference", h.Catalog.GetReference)
	catalog.Get("/roles", h.Catalog.GetRoles)

	// Ledger Routes (summary before :id so it is not parsed as an id)
	ledger := protected.Group("/ledger")
	ledger.Get("/:kind/summary", middleware.RequirePrivilege(model.PrivLedgerView), h.Ledger.GetSummary)
	ledger.Get("/:kind", middleware.RequirePrivilege(model.PrivLedgerView), h.Ledger.GetEntries)
	ledger.Post("/:kind", middleware.RequirePrivilege(model.PrivLedgerCreate), h.Ledger.CreateEntry)
	ledger.Get("/:kind/:id", middleware.RequirePrivilege(model.PrivLedgerView), h.Ledger.GetEntry)
	ledger.Put("/:kind/:id", middleware.RequirePrivilege(model.PrivLedgerUpdate), h.Ledger.UpdateEntry)
	ledger.Delete("/:kind/:id", middleware.RequirePrivilege(model.PrivLedgerDelete), h.Ledger.DeleteEntry)

	// Inventory Routes
	inventory := protected.Group("/inventory")
	inventory.Get("/missing", middleware.RequirePrivilege(model.PrivInventoryView), h.Inventory.GetMissing)
	inventory.Get("/products", middleware.RequirePrivilege(model.PrivInventoryView), h.Inventory.GetProducts)
	inventory.Post("/products", middleware.RequirePrivilege(model.PrivInventoryUpdate), h.Inventory.CreateProduct)
	inventory.Get("/materials", middleware.RequirePrivilege(model.PrivInventoryView), h.Inventory.GetMaterials)
	inventory.Post("/materials", middleware.RequirePrivilege(model.PrivInventoryUpdate), h.Inventory.CreateMaterial)
	inventory.Patch("/:collection/:id", middleware.RequirePrivilege(model.PrivInventoryUpdate), h.Inventory.AdjustStock)
	inventory.Put("/:collection/:id/quantity", middleware.RequirePrivilege(model.PrivInventoryUpdate), h.Inventory.SetQuantity)
	inventory.Put("/:collection/:id/min-quantity", middleware.RequirePrivilege(model.PrivInventoryUpdate), h.Inventory.SetMinQuantity)

	// Dashboard Routes
	dashboard := protected.Group("/dashboard", middleware.RequirePrivilege(model.PrivDashboardView))
	dashboard.Get("/vendor", middleware.RequireRole(model.RoleVendor), h.Dashboard.GetVendorDashboard)
	dashboard.Get("/admin", middleware.RequireRole(model.RoleAdmin), h.Dashboard.GetAdminDashboard)

	if hub == nil {
		return
	}

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
