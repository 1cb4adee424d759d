package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Supermili365/expirapp/internal/checkout"
	"github.com/Supermili365/expirapp/internal/config"
	"github.com/Supermili365/expirapp/internal/repos"
	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/upstream"
)

type Deps struct {
	Auth             *services.AuthService
	AuthHandler      *AuthHandler
	CatalogHandler   *CatalogHandler
	CartHandler      *CartHandler
	CheckoutHandler  *CheckoutHandler
	OrderHandler     *OrderHandler
	InventoryHandler *InventoryHandler
	ProfileHandler   *ProfileHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	api := upstream.New(cfg.APIBaseURL, cfg.OrdersPath)

	cartRepo := repos.NewCartRepo(db)
	sessRepo := repos.NewSessionRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := &services.AuthService{API: api, Sessions: sessRepo}
	cartSvc := services.NewCartService(cartRepo)
	catalogSvc := services.NewCatalogService(api, assetBase(cfg.APIBaseURL))
	invSvc := &services.InventoryService{API: api}
	profileSvc := &services.ProfileService{API: api, Auth: authSvc}
	orch := checkout.New(api)

	return &Deps{
		Auth:             authSvc,
		AuthHandler:      &AuthHandler{Auth: authSvc, API: api},
		CatalogHandler:   &CatalogHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc, Catalog: catalogSvc, Fee: cfg.ShippingFee},
		CheckoutHandler:  &CheckoutHandler{Cart: cartSvc, Orch: orch, Orders: orderRepo, Fee: cfg.ShippingFee},
		OrderHandler:     &OrderHandler{Orders: orderRepo},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		ProfileHandler:   &ProfileHandler{Profiles: profileSvc},
	}
}
