package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/services"
)

// RequireUser loads the session for the sid cookie and rejects requests
// without one. The session lands in Locals for the handler.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := loadSession(c, auth)
		if err != nil {
			applog.Error(c, "session.load", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "could not load session")
		}
		if sess == nil {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("session", sess)
		return c.Next()
	}
}

// RequireSeller additionally demands a store-role session.
func RequireSeller(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := loadSession(c, auth)
		if err != nil {
			applog.Error(c, "session.load", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "could not load session")
		}
		if sess == nil {
			return jsonError(c, fiber.StatusUnauthorized, "login required")
		}
		if !sess.User.IsSeller() {
			applog.Security(c, "access.denied.inventory", map[string]any{"user": sess.User.ID})
			return jsonError(c, fiber.StatusForbidden, "store account required")
		}
		c.Locals("session", sess)
		return c.Next()
	}
}

func loadSession(c *fiber.Ctx, auth *services.AuthService) (*services.Session, error) {
	sid := c.Cookies("sid")
	if sid == "" {
		return nil, nil
	}
	return auth.Current(sid)
}
