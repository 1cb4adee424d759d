package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/pricing"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/validate"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
	Fee     decimal.Decimal
}

// View returns the grouped cart plus a quote for the requested
// fulfillment (pickup when unspecified).
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	fulfillment, ok := validate.Fulfillment(c.Query("fulfillment"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "fulfillment must be pickup or delivery")
	}
	stores, err := h.Cart.View(sid)
	if err != nil {
		applog.Error(c, "cart.view", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load cart")
	}
	return c.JSON(fiber.Map{
		"stores": stores,
		"items":  pricing.Flatten(stores),
		"totals": pricing.Quote(stores, fulfillment, h.Fee),
	})
}

type addBody struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"qty"`
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body addBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.ProductID <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "missing productId")
	}
	body.Quantity = validate.Qty(body.Quantity)

	p, err := h.Catalog.Get(c.Context(), body.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return jsonError(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "cart.add.catalog", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "could not load product")
	}

	if err := h.Cart.Add(sid, *p, body.Quantity); err != nil {
		if errors.Is(err, services.ErrInvalidStoreReference) {
			applog.Security(c, "cart.add.badstore", map[string]any{"product": p.ID})
			return jsonError(c, fiber.StatusUnprocessableEntity, "product has no valid store")
		}
		applog.Error(c, "cart.add", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not add to cart")
	}
	return h.View(c)
}

type updateBody struct {
	ItemID string `json:"itemId"`
	Op     string `json:"op"` // increase | decrease
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	var body updateBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	itemID, ok := validate.ItemID(body.ItemID)
	if !ok || (body.Op != "increase" && body.Op != "decrease") {
		return jsonError(c, fiber.StatusBadRequest, "itemId and op (increase|decrease) are required")
	}
	if err := h.Cart.UpdateQuantity(sid, itemID, body.Op); err != nil {
		applog.Error(c, "cart.update", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.View(c)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	itemID, ok := validate.ItemID(c.Params("itemId"))
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "itemId is required")
	}
	if err := h.Cart.Remove(sid, itemID); err != nil {
		applog.Error(c, "cart.remove", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not update cart")
	}
	return h.View(c)
}
