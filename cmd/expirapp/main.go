package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	"github.com/Supermili365/expirapp/internal/config"
	"github.com/Supermili365/expirapp/internal/http/handlers"
	applog "github.com/Supermili365/expirapp/internal/log"
	"github.com/Supermili365/expirapp/internal/repos"
)

func main() {
	cfg := config.Load()

	// Money fields go out as JSON numbers, the way the backend sends them.
	decimal.MarshalJSONWithoutQuotes = true

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": "Something went wrong. Please try again."})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, cfg)

	// Catalog
	app.Get("/products", deps.CatalogHandler.List)
	app.Get("/products/:id", deps.CatalogHandler.Get)

	// Cart
	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Patch("/cart", deps.CartHandler.Update)
	app.Delete("/cart/:itemId", deps.CartHandler.Remove)

	// Checkout & order history (login required)
	app.Post("/checkout", handlers.RequireUser(deps.Auth), deps.CheckoutHandler.Place)
	app.Get("/orders", handlers.RequireUser(deps.Auth), deps.OrderHandler.History)

	// Auth (login throttled)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/register/store", deps.AuthHandler.RegisterStore)
	app.Post("/password/forgot", deps.AuthHandler.ForgotPassword)
	app.Post("/password/reset", deps.AuthHandler.ResetPassword)

	// Profile
	profile := app.Group("/profile", handlers.RequireUser(deps.Auth))
	profile.Get("/", deps.ProfileHandler.Me)
	profile.Put("/", deps.ProfileHandler.UpdateMe)
	profile.Get("/store", deps.ProfileHandler.Store)
	profile.Put("/store", deps.ProfileHandler.UpdateStore)

	// Seller inventory
	inv := app.Group("/inventory", handlers.RequireSeller(deps.Auth))
	inv.Get("/", deps.InventoryHandler.List)
	inv.Post("/", deps.InventoryHandler.Create)
	inv.Patch("/:id/visibility", deps.InventoryHandler.ToggleVisibility)
	inv.Delete("/:id", deps.InventoryHandler.Delete)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})

	applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "api": cfg.APIBaseURL})
	log.Fatal(app.Listen(":" + cfg.Port))
}
