package services_test

import (
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/repos"
	"github.com/Supermili365/expirapp/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(n int) *int { return &n }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testProduct(id, storeID int) domain.Product {
	return domain.Product{
		ID:        id,
		Name:      "Pan integral",
		Price:     decimal.RequireFromString("2500"),
		StoreID:   storeID,
		StoreName: "Panadería La Espiga",
		Stock:     intp(5),
	}
}

func TestCartAddMergeAndClamp(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))
	sid := "sid-1"

	if err := svc.Add(sid, testProduct(7, 3), 2); err != nil {
		t.Fatal(err)
	}
	// Same product again: quantities merge
	if err := svc.Add(sid, testProduct(7, 3), 2); err != nil {
		t.Fatal(err)
	}

	stores, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(stores) != 1 || len(stores[0].Items) != 1 {
		t.Fatalf("want one store with one line, got %+v", stores)
	}
	if got := stores[0].Items[0].Quantity; got != 4 {
		t.Fatalf("want merged qty 4, got %d", got)
	}

	// Past stock the merge clamps at 5
	if err := svc.Add(sid, testProduct(7, 3), 3); err != nil {
		t.Fatal(err)
	}
	stores, _ = svc.View(sid)
	if got := stores[0].Items[0].Quantity; got != 5 {
		t.Fatalf("want qty clamped to stock 5, got %d", got)
	}
}

func TestCartRejectsMissingStoreReference(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))

	p := testProduct(9, 0)
	err := svc.Add("sid-1", p, 1)
	if !errors.Is(err, services.ErrInvalidStoreReference) {
		t.Fatalf("want ErrInvalidStoreReference, got %v", err)
	}
	stores, _ := svc.View("sid-1")
	if len(stores) != 0 {
		t.Fatalf("cart should stay empty, got %+v", stores)
	}
}

func TestCartGroupsByStoreInInsertionOrder(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))
	sid := "sid-1"

	a := testProduct(1, 10)
	b := testProduct(2, 20)
	b.StoreName = "Verdulería El Campo"
	c := testProduct(3, 10)
	c.Name = "Pan de queso"

	for _, p := range []domain.Product{a, b, c} {
		if err := svc.Add(sid, p, 1); err != nil {
			t.Fatal(err)
		}
	}

	stores, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(stores) != 2 {
		t.Fatalf("want 2 store groups, got %d", len(stores))
	}
	if stores[0].ID != 10 || stores[1].ID != 20 {
		t.Fatalf("want insertion order [10 20], got [%d %d]", stores[0].ID, stores[1].ID)
	}
	if len(stores[0].Items) != 2 || len(stores[1].Items) != 1 {
		t.Fatalf("bad grouping: %+v", stores)
	}
}

func TestCartUpdateQuantityBounds(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))
	sid := "sid-1"

	p := testProduct(4, 2)
	p.Stock = intp(2)
	if err := svc.Add(sid, p, 1); err != nil {
		t.Fatal(err)
	}

	// decrease below 1 stays at 1
	if err := svc.UpdateQuantity(sid, "p-4", "decrease"); err != nil {
		t.Fatal(err)
	}
	stores, _ := svc.View(sid)
	if got := stores[0].Items[0].Quantity; got != 1 {
		t.Fatalf("want floor 1, got %d", got)
	}

	// increase twice caps at stock 2
	_ = svc.UpdateQuantity(sid, "p-4", "increase")
	if err := svc.UpdateQuantity(sid, "p-4", "increase"); err != nil {
		t.Fatal(err)
	}
	stores, _ = svc.View(sid)
	if got := stores[0].Items[0].Quantity; got != 2 {
		t.Fatalf("want ceiling 2, got %d", got)
	}

	// unknown item is a no-op
	if err := svc.UpdateQuantity(sid, "p-999", "increase"); err != nil {
		t.Fatal(err)
	}
}

func TestCartRemoveLastItemPrunesStore(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))
	sid := "sid-1"

	if err := svc.Add(sid, testProduct(5, 8), 1); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(sid, "p-5"); err != nil {
		t.Fatal(err)
	}
	stores, err := svc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(stores) != 0 {
		t.Fatalf("store group should vanish with its last item, got %+v", stores)
	}
}

func TestCartKeepsPricePairAndClampsInitialQty(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db))
	sid := "sid-1"

	p := testProduct(6, 8)
	p.OriginalPrice = decp("4000")
	p.DiscountPrice = decp("2990")
	p.Stock = intp(3)
	if err := svc.Add(sid, p, 10); err != nil {
		t.Fatal(err)
	}

	stores, _ := svc.View(sid)
	item := stores[0].Items[0]
	if item.Quantity != 3 {
		t.Fatalf("want initial qty clamped to stock 3, got %d", item.Quantity)
	}
	if !item.SalePrice.Equal(decimal.RequireFromString("2990")) {
		t.Fatalf("want sale price 2990, got %s", item.SalePrice)
	}
	if !item.OriginalPrice.Equal(decimal.RequireFromString("4000")) {
		t.Fatalf("want original price 4000, got %s", item.OriginalPrice)
	}
	if !item.UnitPrice().Equal(decimal.RequireFromString("2990")) {
		t.Fatalf("unit price should follow the sale price, got %s", item.UnitPrice())
	}
}
