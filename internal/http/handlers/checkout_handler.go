package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Supermili365/expirapp/internal/checkout"
	"github.com/Supermili365/expirapp/internal/domain"
	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/pricing"
	"github.com/Supermili365/expirapp/internal/repos"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/validate"
)

type CheckoutHandler struct {
	Cart   *services.CartService
	Orch   *checkout.Orchestrator
	Orders *repos.OrderRepo
	Fee    decimal.Decimal
}

type placeBody struct {
	PaymentMethod string `json:"payment_method"`
	Fulfillment   string `json:"fulfillment"`
}

// Place runs the whole checkout: quote, split per store, submit with
// retries, record history, and clear the cart on full success. A manual
// retry is just this endpoint again; nothing partial is resumed.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	sess := sessionFromLocals(c)
	if sess == nil {
		return jsonError(c, fiber.StatusUnauthorized, "login required")
	}

	var body placeBody
	if err := c.BodyParser(&body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	payment, ok := validate.PaymentMethod(body.PaymentMethod)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "payment_method must be card, pse or cod")
	}
	fulfillment, ok := validate.Fulfillment(body.Fulfillment)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "fulfillment must be pickup or delivery")
	}

	stores, err := h.Cart.View(sess.SID)
	if err != nil {
		applog.Error(c, "checkout.cart", err, nil)
		return jsonError(c, fiber.StatusInternalServerError, "could not load cart")
	}
	totals := pricing.Quote(stores, fulfillment, h.Fee)

	out, err := h.Orch.Submit(c.Context(), sess, stores, payment)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			return jsonError(c, fiber.StatusBadRequest, "the cart is empty")
		case errors.Is(err, checkout.ErrNoIdentity), errors.Is(err, checkout.ErrNoToken):
			applog.Security(c, "checkout.identity", nil)
			return jsonError(c, fiber.StatusUnauthorized, "session expired, log in again")
		default:
			applog.Error(c, "checkout.submit", err, nil)
			return jsonError(c, fiber.StatusInternalServerError, "checkout failed")
		}
	}

	h.record(c, sess, stores, out, payment, fulfillment)

	if out.AllOK() {
		if err := h.Cart.Clear(sess.SID); err != nil {
			applog.Error(c, "checkout.clear", err, nil)
		}
	}

	applog.Audit(c, "checkout.done", map[string]any{
		"user": sess.User.ID, "succeeded": out.Succeeded, "failed": out.Failed,
		"total": totals.Total,
	})

	status := fiber.StatusOK
	switch {
	case out.Partial():
		status = fiber.StatusMultiStatus
	case out.AllFailed():
		status = fiber.StatusBadGateway
	}
	return c.Status(status).JSON(fiber.Map{
		"message": out.Message,
		"results": out.Results,
		"totals":  totals,
	})
}

// record writes one history row per store result. The delivery fee is
// charged once per checkout, so it lands on the first row; row totals
// then sum to the quoted cart total.
func (h *CheckoutHandler) record(c *fiber.Ctx, sess *services.Session, stores []domain.CartStore, out checkout.Outcome, payment, fulfillment string) {
	byID := map[int]domain.CartStore{}
	for _, s := range stores {
		byID[s.ID] = s
	}
	fee := decimal.Zero
	if fulfillment == pricing.FulfillmentDelivery {
		fee = h.Fee
	}
	for i, res := range out.Results {
		store := byID[res.StoreID]
		total := pricing.Quote([]domain.CartStore{store}, pricing.FulfillmentPickup, decimal.Zero)
		rec := repos.OrderRecord{
			ID:              uuid.NewString(),
			SessionID:       sess.SID,
			ClientID:        sess.User.ID,
			StoreID:         res.StoreID,
			StoreName:       res.Store,
			UpstreamOrderID: res.OrderID,
			PaymentMethod:   payment,
			Fulfillment:     fulfillment,
			Total:           total.Total,
			Status:          repos.OrderStatusPlaced,
		}
		if i == 0 {
			rec.Total = rec.Total.Add(fee)
		}
		if !res.OK {
			rec.Status = repos.OrderStatusFailed
			rec.Error = res.Err
		}
		if err := h.Orders.Record(rec); err != nil {
			applog.Error(c, "checkout.record", err, map[string]any{"store": res.Store})
		}
	}
}
