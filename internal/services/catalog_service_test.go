package services_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Supermili365/expirapp/internal/services"
	"github.com/Supermili365/expirapp/internal/upstream"
)

func catalogFixture(t *testing.T) *services.CatalogService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"productos":[
		  {"id_producto":1,"nombre":"Pan integral","precio":2500,"fecha_vencimiento":"2026-09-10","nombre_categoria":"Panadería","imagen_url":"uploads\\pan.jpg"},
		  {"id_producto":2,"nombre":"Leche entera","precio":0,"fecha_vencimiento":"2026-09-01","nombre_categoria":"Lácteos"},
		  {"id_producto":3,"nombre":"Queso campesino","precio":4000,"precio_original":"6000","precio_descuento":"4000","nombre_categoria":"Lácteos"}
		]}`)
	}))
	t.Cleanup(srv.Close)
	api := upstream.New(srv.URL, "/orders")
	api.HTTP = srv.Client()
	return services.NewCatalogService(api, "http://cdn.local")
}

func TestCatalogFilters(t *testing.T) {
	svc := catalogFixture(t)
	ctx := context.Background()

	donations, err := svc.List(ctx, services.CatalogFilter{DonationsOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(donations) != 1 || donations[0].ID != 2 {
		t.Fatalf("want only the free product, got %+v", donations)
	}

	// every priced product carries a discount margin; donations never do
	offers, err := svc.List(ctx, services.CatalogFilter{OffersOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(offers) != 2 {
		t.Fatalf("want both priced products, got %+v", offers)
	}
	for _, p := range offers {
		if p.IsDonation() {
			t.Fatalf("donation slipped into offers: %+v", p)
		}
	}

	dairy, err := svc.List(ctx, services.CatalogFilter{Category: "lácteos"})
	if err != nil {
		t.Fatal(err)
	}
	if len(dairy) != 2 {
		t.Fatalf("category filter should be case-insensitive, got %+v", dairy)
	}

	byName, err := svc.List(ctx, services.CatalogFilter{Query: "pan"})
	if err != nil {
		t.Fatal(err)
	}
	if len(byName) != 1 || byName[0].ID != 1 {
		t.Fatalf("want name search hit, got %+v", byName)
	}
}

func TestCatalogExpiringFirst(t *testing.T) {
	svc := catalogFixture(t)

	all, err := svc.List(context.Background(), services.CatalogFilter{ExpiringFirst: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("want 3 products, got %d", len(all))
	}
	// soonest expiry first, undated last
	if all[0].ID != 2 || all[1].ID != 1 || all[2].ID != 3 {
		t.Fatalf("bad order: %d %d %d", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestCatalogNormalizesImageURL(t *testing.T) {
	svc := catalogFixture(t)

	p, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if p.ImageURL != "http://cdn.local/uploads/pan.jpg" {
		t.Fatalf("bad image url: %s", p.ImageURL)
	}
}

func TestCatalogGetUnknownID(t *testing.T) {
	svc := catalogFixture(t)
	if _, err := svc.Get(context.Background(), 99); err != services.ErrProductNotFound {
		t.Fatalf("want ErrProductNotFound, got %v", err)
	}
}
