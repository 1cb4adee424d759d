package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/pricing"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func item(id, name, price string, qty int) domain.CartItem {
	return domain.CartItem{ItemID: id, Name: name, SalePrice: d(price), Quantity: qty}
}

var flatFee = decimal.NewFromInt(5000)

func TestQuote_WorkedExample(t *testing.T) {
	cart := []domain.CartStore{{
		ID:   1,
		Name: "Frutería Central",
		Items: []domain.CartItem{
			item("p-1", "Manzanas", "2.50", 1),
			item("p-2", "Pan", "1.75", 2),
		},
	}}

	q := pricing.Quote(cart, pricing.FulfillmentPickup, flatFee)

	assert.True(t, q.Subtotal.Equal(d("6.00")), "subtotal = %s", q.Subtotal)
	assert.True(t, q.Shipping.IsZero(), "pickup ships free, got %s", q.Shipping)
	assert.True(t, q.Taxes.Equal(d("1.14")), "taxes = %s", q.Taxes)
	assert.True(t, q.Total.Equal(d("7.14")), "total = %s", q.Total)
}

func TestQuote_TotalIdentity(t *testing.T) {
	carts := [][]domain.CartStore{
		nil,
		{{ID: 1, Name: "A", Items: []domain.CartItem{item("p-1", "x", "1999", 3)}}},
		{
			{ID: 1, Name: "A", Items: []domain.CartItem{item("p-1", "x", "0.01", 7)}},
			{ID: 2, Name: "B", Items: []domain.CartItem{item("p-2", "y", "123.45", 2)}},
		},
	}
	for _, cart := range carts {
		for _, f := range []string{pricing.FulfillmentPickup, pricing.FulfillmentDelivery} {
			q := pricing.Quote(cart, f, flatFee)
			assert.True(t, q.Total.Equal(q.Subtotal.Add(q.Shipping).Add(q.Taxes)))
			assert.True(t, q.Taxes.Equal(q.Subtotal.Mul(d("0.19")).Round(2)))
		}
	}
}

func TestQuote_DeliveryFee(t *testing.T) {
	cart := []domain.CartStore{{ID: 1, Name: "A", Items: []domain.CartItem{item("p-1", "x", "100", 1)}}}

	q := pricing.Quote(cart, pricing.FulfillmentDelivery, flatFee)
	assert.True(t, q.Shipping.Equal(flatFee))

	// An empty cart ships nothing even for delivery.
	empty := pricing.Quote(nil, pricing.FulfillmentDelivery, flatFee)
	assert.True(t, empty.Shipping.IsZero())
	assert.True(t, empty.Total.IsZero())
}

func TestFlatten_DropsUnpriceableLines(t *testing.T) {
	donation := item("p-1", "Zanahorias", "0", 2)
	negative := item("p-2", "Raro", "-5", 1)
	zeroQty := item("p-3", "Leche", "2000", 0)
	fallback := domain.CartItem{ItemID: "p-4", Name: "Pan", OriginalPrice: d("3000"), Quantity: 1}

	cart := []domain.CartStore{{ID: 1, Name: "A", Items: []domain.CartItem{donation, negative, zeroQty, fallback}}}
	lines := pricing.Flatten(cart)

	require.Len(t, lines, 1)
	assert.Equal(t, "Pan", lines[0].Name)
	assert.True(t, lines[0].Price.Equal(d("3000")), "sale price absent, original used")

	q := pricing.Quote(cart, pricing.FulfillmentPickup, flatFee)
	assert.True(t, q.Subtotal.Equal(d("3000")))
}

func TestFlatten_DefaultSize(t *testing.T) {
	cart := []domain.CartStore{{ID: 1, Name: "A", Items: []domain.CartItem{item("p-1", "x", "10", 1)}}}
	lines := pricing.Flatten(cart)
	require.Len(t, lines, 1)
	assert.Equal(t, "Unidad", lines[0].Size)
}
