package domain

import "github.com/shopspring/decimal"

// CartItem is one product line inside a store group. ItemID is the
// catalog-derived identifier ("p-<product id>").
type CartItem struct {
	ItemID        string          `db:"item_id" json:"itemId"`
	Name          string          `db:"name" json:"name"`
	Size          string          `db:"size" json:"size,omitempty"`
	ExpiryDate    string          `db:"expiry_date" json:"expiryDate,omitempty"`
	OriginalPrice decimal.Decimal `db:"original_price" json:"originalPrice"`
	SalePrice     decimal.Decimal `db:"sale_price" json:"salePrice"`
	Quantity      int             `db:"quantity" json:"quantity"`
	ImageURL      string          `db:"image_url" json:"imageUrl,omitempty"`
	Stock         *int            `db:"stock" json:"stock,omitempty"`
}

// UnitPrice is the price a line is charged at: sale price, falling back to
// the original price, else zero. Negative values count as unset.
func (i CartItem) UnitPrice() decimal.Decimal {
	if i.SalePrice.IsPositive() {
		return i.SalePrice
	}
	if i.OriginalPrice.IsPositive() {
		return i.OriginalPrice
	}
	return decimal.Zero
}

// CartStore groups cart items by the store that sells them. ID is the
// canonical numeric store identifier the order API expects; Name is only
// for display.
type CartStore struct {
	ID    int        `json:"id"`
	Name  string     `json:"store"`
	Items []CartItem `json:"items"`
}

// LineItem is the flattened, read-only view used for totals and display.
type LineItem struct {
	Name     string          `json:"name"`
	Size     string          `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}
