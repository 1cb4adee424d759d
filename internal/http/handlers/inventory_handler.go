package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/upstream"
)

type InventoryHandler struct {
	Inv *services.InventoryService
}

func (h *InventoryHandler) List(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	products, err := h.Inv.List(c.Context(), sess)
	if err != nil {
		return h.fail(c, "inventory.list", err)
	}
	return c.JSON(fiber.Map{"productos": products})
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	var draft services.ProductDraft
	if err := c.BodyParser(&draft); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if draft.Name == "" || draft.Price < 0 || draft.ExpiryDate == "" {
		return jsonError(c, fiber.StatusBadRequest, "nombre, precio and fecha_vencimiento are required")
	}
	if err := h.Inv.Create(c.Context(), sess, draft); err != nil {
		return h.fail(c, "inventory.create", err)
	}
	applog.Audit(c, "inventory.create.ok", map[string]any{"nombre": draft.Name})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
}

func (h *InventoryHandler) ToggleVisibility(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Inv.ToggleVisibility(c.Context(), sess, id); err != nil {
		return h.fail(c, "inventory.toggle", err)
	}
	applog.Audit(c, "inventory.toggle.ok", map[string]any{"product": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	if err := h.Inv.Delete(c.Context(), sess, id); err != nil {
		return h.fail(c, "inventory.delete", err)
	}
	applog.Audit(c, "inventory.delete.ok", map[string]any{"product": id})
	return c.JSON(fiber.Map{"ok": true})
}

func (h *InventoryHandler) fail(c *fiber.Ctx, action string, err error) error {
	if errors.Is(err, services.ErrNotASeller) {
		return jsonError(c, fiber.StatusForbidden, "store account required")
	}
	var se *upstream.StatusError
	if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 {
		return jsonError(c, se.Code, se.Body)
	}
	applog.Error(c, action, err, nil)
	return jsonError(c, fiber.StatusBadGateway, "inventory service unavailable")
}
