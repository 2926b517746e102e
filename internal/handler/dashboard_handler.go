package handler

import (
	"time"

	"store-ledger/internal/service"
	"store-ledger/pkg/format"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetVendorDashboard returns today's figures for the vendor's store
func (h *DashboardHandler) GetVendorDashboard(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	d, err := h.service.Vendor(c.UserContext(), session, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":                d,
		"today_sales_display": format.Currency(d.TodaySales),
		"date":                format.Date(time.Now()),
	})
}

// GetAdminDashboard returns the overview across stores
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	session, ok := currentSession(c)
	if !ok {
		return unauthorized(c)
	}
	d, err := h.service.Admin(c.UserContext(), session, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":                 d,
		"total_income_display": format.Currency(d.TotalIncome),
	})
}
