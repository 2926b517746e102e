package middleware

import (
	"strings"

	"store-ledger/internal/model"
	"store-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

// TokenValidator resolves a bearer token into a session
type TokenValidator interface {
	ValidateToken(token string) (model.Session, error)
}

// RequireSession validates the bearer token and stores the session in context
func RequireSession(tokens TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": jwt.ErrMissingToken.Error()})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		session, err := tokens.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals(sessionKey, session)
		return c.Next()
	}
}

// SessionFrom returns the session set by RequireSession
func SessionFrom(c *fiber.Ctx) (model.Session, bool) {
	session, ok := c.Locals(sessionKey).(model.Session)
	return session, ok
}

// RequireRole lets only the listed roles through
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFrom(c)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No session found"})
		}

		for _, r := range roles {
			if session.Role == r {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{"error": "Forbidden: role '" + string(session.Role) + "' cannot access this resource"})
	}
}

// RequirePrivilege checks if the session's role grants the required privilege
func RequirePrivilege(required model.Privilege) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFrom(c)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No session found"})
		}

		if !session.Role.HasPrivilege(required) {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + string(required) + "' privilege",
			})
		}
		return c.Next()
	}
}
