package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/upstream"
	"github.com/Supermili365/expirapp/internal/validate"
)

type ProfileHandler struct {
	Profiles *services.ProfileService
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	u, err := h.Profiles.GetUser(c.Context(), sess)
	if err != nil {
		return h.fail(c, "profile.get", err)
	}
	return c.JSON(fiber.Map{"usuario": u})
}

func (h *ProfileHandler) UpdateMe(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	var in upstream.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if in.Email != "" {
		email, ok := validate.Email(in.Email)
		if !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid email")
		}
		in.Email = email
	}
	u, err := h.Profiles.UpdateUser(c.Context(), sess, in)
	if err != nil {
		return h.fail(c, "profile.update", err)
	}
	applog.Audit(c, "profile.update.ok", map[string]any{"user": sess.User.ID})
	return c.JSON(fiber.Map{"usuario": u})
}

func (h *ProfileHandler) Store(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	st, err := h.Profiles.GetStore(c.Context(), sess)
	if err != nil {
		return h.fail(c, "profile.store.get", err)
	}
	return c.JSON(fiber.Map{"tienda": st})
}

func (h *ProfileHandler) UpdateStore(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	var in upstream.UpdateStoreInput
	if err := c.BodyParser(&in); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Profiles.UpdateStore(c.Context(), sess, in); err != nil {
		return h.fail(c, "profile.store.update", err)
	}
	applog.Audit(c, "profile.store.update.ok", map[string]any{"store": *sess.User.StoreID})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *ProfileHandler) fail(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, services.ErrNotASeller) {
		return jsonError(c, fiber.StatusForbidden, "store account required")
	}
	var se *upstream.StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
		return jsonError(c, se.Code, se.Body)
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusBadGateway, "profile service unavailable")
}
