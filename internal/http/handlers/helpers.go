package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Supermili365/expirapp/internal/services"
)

// ensureSID returns the session cookie, minting one on first contact. The
// same value keys the cart, so anonymous browsing can fill a cart before
// logging in. A freshly minted sid is kept in Locals so every call within
// the same request sees the same value.
func ensureSID(c *fiber.Ctx) string {
	if sid, ok := c.Locals("sid").(string); ok && sid != "" {
		return sid
	}
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals("sid", sid)
	return sid
}

func sessionFromLocals(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals("session").(*services.Session)
	return s
}

func jsonError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// assetBase derives the host root that serves product images from the API
// base URL (".../api/v1" -> host root).
func assetBase(apiBase string) string {
	base := strings.TrimRight(apiBase, "/")
	if i := strings.Index(base, "/api/"); i > 0 {
		return base[:i]
	}
	return base
}
