package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/repos"
)

type OrderHandler struct {
	Orders *repos.OrderRepo
}

// History lists orders the logged-in user placed through this gateway,
// newest first, including failed submissions.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	if sess == nil {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}
	orders, err := h.Orders.ListByClient(sess.User.ID)
	if err != nil {
		applog.Error(c, "orders.history", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load orders")
	}
	return c.JSON(fiber.Map{"orders": orders})
}
