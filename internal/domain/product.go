package domain

import "github.com/shopspring/decimal"

// Product mirrors the backend catalog object. Prices arrive either as a
// single "precio" (current price) or as an original/discount pair.
type Product struct {
	ID            int              `json:"id_producto"`
	Name          string           `json:"nombre"`
	Description   string           `json:"descripcion,omitempty"`
	Price         decimal.Decimal  `json:"precio"`
	OriginalPrice *decimal.Decimal `json:"precio_original,omitempty"`
	DiscountPrice *decimal.Decimal `json:"precio_descuento,omitempty"`
	ExpiryDate    string           `json:"fecha_vencimiento,omitempty"`
	Stock         *int             `json:"stock,omitempty"`
	Size          string           `json:"tamano,omitempty"`
	ImageURL      string           `json:"imagen_url,omitempty"`
	Status        string           `json:"estado,omitempty"`
	StoreID       int              `json:"id_tienda,omitempty"`
	StoreName     string           `json:"nombre_tienda,omitempty"`
	CategoryName  string           `json:"nombre_categoria,omitempty"`
}

// SalePrice is the current (discounted) price of the product.
func (p Product) SalePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

// ListPrice is the pre-discount price. When the backend sends only the
// current price the margin is reconstructed the way the storefront always
// displayed it: current price plus 35 percent.
func (p Product) ListPrice() decimal.Decimal {
	if p.OriginalPrice != nil && p.DiscountPrice != nil {
		return *p.OriginalPrice
	}
	sale := p.SalePrice()
	if sale.IsZero() {
		return sale
	}
	return sale.Mul(decimal.NewFromFloat(1.35)).Round(0)
}

func (p Product) IsDonation() bool {
	return p.SalePrice().IsZero()
}

// Badge labels a product card: donations and discounted offers.
func (p Product) Badge() string {
	switch {
	case p.IsDonation():
		return "Donación"
	case p.ListPrice().GreaterThan(p.SalePrice()):
		return "Oferta"
	default:
		return ""
	}
}
