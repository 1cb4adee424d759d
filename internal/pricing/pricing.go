// Package pricing computes cart totals. It is pure: malformed lines are
// dropped or coerced to zero, never reported as errors.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Supermili365/expirapp/internal/domain"
)

const (
	FulfillmentPickup   = "pickup"
	FulfillmentDelivery = "delivery"
)

// taxRate is the fixed 19% VAT applied to every quote.
var taxRate = decimal.New(19, -2)

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Taxes    decimal.Decimal `json:"taxes"`
	Total    decimal.Decimal `json:"total"`
}

// Flatten collapses store groups into display lines. Lines with a
// non-positive price or quantity never reach the totals: donations are
// free and malformed rows must not inflate a charge.
func Flatten(stores []domain.CartStore) []domain.LineItem {
	var out []domain.LineItem
	for _, s := range stores {
		for _, it := range s.Items {
			price := it.UnitPrice()
			if !price.IsPositive() || it.Quantity <= 0 {
				continue
			}
			size := it.Size
			if size == "" {
				size = "Unidad"
			}
			out = append(out, domain.LineItem{
				Name:     it.Name,
				Size:     size,
				Price:    price,
				Quantity: it.Quantity,
			})
		}
	}
	return out
}

// Quote prices a cart. Pickup ships free; delivery pays the flat fee
// unless the cart is empty. Taxes round to cents.
func Quote(stores []domain.CartStore, fulfillment string, shippingFee decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, line := range Flatten(stores) {
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	shipping := decimal.Zero
	if fulfillment == FulfillmentDelivery && subtotal.IsPositive() {
		shipping = shippingFee
	}

	taxes := subtotal.Mul(taxRate).Round(2)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Taxes:    taxes,
		Total:    subtotal.Add(shipping).Add(taxes),
	}
}
