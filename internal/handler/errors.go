package handler

import (
	"errors"
	"strconv"

	"store-ledger/internal/middleware"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
	"store-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors onto HTTP statuses
func respondError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(400).JSON(fiber.Map{"error": verr.Error(), "field": verr.Field, "tag": verr.Tag})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrEntryNotFound):
		return c.Status(404).JSON(fiber.Map{"error": "Entry not found"})
	case errors.Is(err, repository.ErrVersionConflict):
		return c.Status(409).JSON(fiber.Map{"error": "The collection changed while saving, please retry"})
	case errors.Is(err, service.ErrPersistence):
		return c.Status(503).JSON(fiber.Map{"error": "Storage is unavailable, nothing was saved"})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func currentSession(c *fiber.Ctx) (model.Session, bool) {
	return middleware.SessionFrom(c)
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(401).JSON(fiber.Map{"error": "Missing session"})
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}
