package handler

import (
	"time"

	"store-ledger/internal/catalog"
	"store-ledger/internal/model"
	"store-ledger/internal/service"
	"store-ledger/pkg/format"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service   service.LedgerService
	dashboard service.DashboardService
	labels    *CatalogHandler
}

func NewLedgerHandler(s service.LedgerService, d service.DashboardService, c *catalog.Catalog) *LedgerHandler {
	return &LedgerHandler{service: s, dashboard: d, labels: NewCatalogHandler(c)}
}

// entryView is an entry with its display strings
type entryView struct {
	Entry         model.Entry `json:"entry"`
	Kind          model.Kind  `json:"kind"`
	StoreName     string      `json:"store_name"`
	DateDisplay   string      `json:"date_display"`
	AmountDisplay string      `json:"amount_display,omitempty"`
}

func (h *LedgerHandler) view(e model.Entry) entryView {
	v := entryView{
		Entry:       e,
		Kind:        e.Kind(),
		StoreName:   h.labels.storeLabel(e.StoreRef()),
		DateDisplay: format.Date(e.EntryDate()),
	}
	switch e.Kind() {
	case model.KindSale, model.KindIncome, model.KindCredit:
		v.AmountDisplay = format.Currency(model.AmountOf(e))
	}
	return v
}

func parseKind(c *fiber.Ctx) (model.Kind, bool) {
	kind, err := model.ParseKind(c.Params("kind"))
	return kind, err == nil
}

// GetEntries lists a ledger, newest first
// Query params: store (slug or "all"; vendors always get their own store)
func (h *LedgerHandler) GetEntries(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}

	entries, err := h.service.List(c.UserContext(), session, kind, model.ParseScope(c.Query("store")))
	if err != nil {
		return respondError(c, err)
	}

	views := make([]entryView, len(entries))
	for i, e := range entries {
		views[i] = h.view(e)
	}
	return c.JSON(fiber.Map{
		"kind":  kind,
		"count": len(views),
		"data":  views,
	})
}

// GetEntry returns one entry by id
func (h *LedgerHandler) GetEntry(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	entry, err := h.service.Get(c.UserContext(), session, kind, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.view(entry))
}

func (h *LedgerHandler) CreateEntry(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}

	var req service.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Create(c.UserContext(), session, kind, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": kind.Label() + " entry created", "data": h.view(entry)})
}

func (h *LedgerHandler) UpdateEntry(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	var req service.EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.service.Update(c.UserContext(), session, kind, id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": kind.Label() + " entry updated", "data": h.view(entry)})
}

func (h *LedgerHandler) DeleteEntry(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}
	id, ok := parseID(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}

	if err := h.service.Delete(c.UserContext(), session, kind, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": kind.Label() + " entry deleted"})
}

// GetSummary aggregates a ledger
// Query params: store, group (store, category, type), filter (category or income type)
func (h *LedgerHandler) GetSummary(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	kind, ok := parseKind(c)
	if !ok {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown ledger kind"})
	}

	q := service.SummaryQuery{
		Scope:   model.ParseScope(c.Query("store")),
		GroupBy: c.Query("group"),
		Filter:  c.Query("filter", "all"),
	}
	summary, err := h.dashboard.Summary(c.UserContext(), session, kind, q, time.Now())
	if err != nil {
		return respondError(c, err)
	}

	resp := fiber.Map{"data": summary}
	if summary.Measure == "amount" {
		resp["total_display"] = format.Currency(summary.Total)
		resp["average_display"] = format.Currency(summary.Average)
		resp["today_display"] = format.Currency(summary.Today)
	}
	return c.JSON(resp)
}
