package services

import (
	"errors"
	"fmt"

	"github.com/Supermili365/expirapp/internal/domain"
	"github.com/Supermili365/expirapp/internal/repos"
)

// ErrInvalidStoreReference rejects products that carry no canonical store
// id. The cart never falls back to a sentinel store.
var ErrInvalidStoreReference = errors.New("product has no valid store reference")

type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService {
	return &CartService{Carts: carts}
}

func clampQty(qty int, stock *int) int {
	if qty < 1 {
		qty = 1
	}
	if stock != nil && qty > *stock {
		qty = *stock
	}
	return qty
}

// Add puts qty units of a catalog product into the session's cart. Items
// of the same product merge by summing quantities; the result is clamped
// to the product's stock.
func (s *CartService) Add(sid string, p domain.Product, qty int) error {
	if p.StoreID <= 0 {
		return ErrInvalidStoreReference
	}
	if qty < 1 {
		qty = 1
	}
	if err := s.Carts.EnsureCart(sid); err != nil {
		return err
	}

	itemID := fmt.Sprintf("p-%d", p.ID)
	existing, err := s.Carts.Get(sid, itemID)
	if err != nil {
		return err
	}
	if existing != nil {
		var stock *int
		if existing.Stock.Valid {
			n := int(existing.Stock.Int64)
			stock = &n
		}
		return s.Carts.SetQuantity(sid, itemID, clampQty(existing.Quantity+qty, stock))
	}

	storeName := p.StoreName
	if storeName == "" {
		storeName = "Tienda"
	}
	sale := p.SalePrice()
	list := p.ListPrice()
	item := domain.CartItem{
		ItemID:        itemID,
		Name:          p.Name,
		Size:          p.Size,
		ExpiryDate:    p.ExpiryDate,
		OriginalPrice: list,
		SalePrice:     sale,
		Quantity:      clampQty(qty, p.Stock),
		ImageURL:      p.ImageURL,
		Stock:         p.Stock,
	}
	return s.Carts.Insert(sid, p.StoreID, storeName, item)
}

// UpdateQuantity applies a +1/-1 step, clamped to [1, stock]. Unknown
// items are a no-op.
func (s *CartService) UpdateQuantity(sid, itemID, direction string) error {
	row, err := s.Carts.Get(sid, itemID)
	if err != nil || row == nil {
		return err
	}
	delta := 1
	if direction == "decrease" {
		delta = -1
	}
	var stock *int
	if row.Stock.Valid {
		n := int(row.Stock.Int64)
		stock = &n
	}
	next := clampQty(row.Quantity+delta, stock)
	if next == row.Quantity {
		return nil
	}
	return s.Carts.SetQuantity(sid, itemID, next)
}

func (s *CartService) Remove(sid, itemID string) error {
	return s.Carts.Remove(sid, itemID)
}

func (s *CartService) Clear(sid string) error {
	return s.Carts.Clear(sid)
}

// View rebuilds the store-grouped cart in insertion order. Store groups
// exist only while they have items, so pruning is structural.
func (s *CartService) View(sid string) ([]domain.CartStore, error) {
	rows, err := s.Carts.List(sid)
	if err != nil {
		return nil, err
	}
	var stores []domain.CartStore
	index := map[int]int{}
	for _, row := range rows {
		i, ok := index[row.StoreID]
		if !ok {
			stores = append(stores, domain.CartStore{ID: row.StoreID, Name: row.StoreName})
			i = len(stores) - 1
			index[row.StoreID] = i
		}
		stores[i].Items = append(stores[i].Items, row.Item())
	}
	return stores, nil
}
