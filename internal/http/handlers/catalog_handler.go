package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/services"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
}

// List serves the browse page data: full catalog with optional search,
// category, donations-only and offers-only filters.
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	f := services.CatalogFilter{
		Query:         c.Query("q"),
		Category:      c.Query("category"),
		DonationsOnly: c.QueryBool("donations"),
		OffersOnly:    c.QueryBool("offers"),
		ExpiringFirst: c.Query("sort") == "expiry",
	}
	products, err := h.Catalog.List(c.Context(), f)
	if err != nil {
		applog.Error(c, "catalog.list", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "could not load products")
	}
	return c.JSON(fiber.Map{"productos": products})
}

func (h *CatalogHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "invalid product id")
	}
	p, err := h.Catalog.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return jsonError(c, fiber.StatusNotFound, "product not found")
		}
		applog.Error(c, "catalog.get", err, nil)
		return jsonError(c, fiber.StatusBadGateway, "could not load product")
	}
	return c.JSON(p)
}
