package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func tokenFromHeader(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}

// authRequired resolves the viewer identity or aborts with 401.
func authRequired(c *fiber.Ctx) error {
	token := tokenFromHeader(c)
	if token == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "authorization required")
	}
	userID, err := tokens.VerifyToken(token)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
	}

	c.Locals("userId", userID)
	return c.Next()
}

// authOptional resolves the viewer when a valid token is present and lets
// the request stay anonymous otherwise.
func authOptional(c *fiber.Ctx) error {
	if token := tokenFromHeader(c); token != "" {
		if userID, err := tokens.VerifyToken(token); err == nil {
			c.Locals("userId", userID)
		}
	}
	return c.Next()
}

func viewerID(c *fiber.Ctx) uuid.UUID {
	return c.Locals("userId").(uuid.UUID)
}

func optionalViewerID(c *fiber.Ctx) *uuid.UUID {
	if id, ok := c.Locals("userId").(uuid.UUID); ok {
		return &id
	}
	return nil
}
