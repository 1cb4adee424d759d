package repos

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Supermili365/expirapp/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// CartItemRow is one stored line together with its store grouping keys.
type CartItemRow struct {
	ItemID        string          `db:"item_id"`
	StoreID       int             `db:"store_id"`
	StoreName     string          `db:"store_name"`
	Name          string          `db:"name"`
	Size          string          `db:"size"`
	ExpiryDate    string          `db:"expiry_date"`
	OriginalPrice decimal.Decimal `db:"original_price"`
	SalePrice     decimal.Decimal `db:"sale_price"`
	Quantity      int             `db:"quantity"`
	ImageURL      string          `db:"image_url"`
	Stock         sql.NullInt64   `db:"stock"`
}

func (r CartItemRow) Item() domain.CartItem {
	it := domain.CartItem{
		ItemID:        r.ItemID,
		Name:          r.Name,
		Size:          r.Size,
		ExpiryDate:    r.ExpiryDate,
		OriginalPrice: r.OriginalPrice,
		SalePrice:     r.SalePrice,
		Quantity:      r.Quantity,
		ImageURL:      r.ImageURL,
	}
	if r.Stock.Valid {
		n := int(r.Stock.Int64)
		it.Stock = &n
	}
	return it
}

func (r *CartRepo) EnsureCart(sid string) error {
	_, err := r.db.Exec(`INSERT INTO carts(id, updated_at) VALUES(?, ?)
		ON CONFLICT(id) DO NOTHING`, sid, time.Now().Format(time.RFC3339))
	return err
}

// Get returns one line, or (nil, nil) when the item is not in the cart.
func (r *CartRepo) Get(sid, itemID string) (*CartItemRow, error) {
	var row CartItemRow
	err := r.db.Get(&row, `
	  SELECT item_id, store_id, store_name, name, size, expiry_date,
	         original_price, sale_price, quantity, image_url, stock
	  FROM cart_items WHERE cart_id = ? AND item_id = ?`, sid, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *CartRepo) Insert(sid string, storeID int, storeName string, it domain.CartItem) error {
	var stock any
	if it.Stock != nil {
		stock = *it.Stock
	}
	_, err := r.db.Exec(`
	  INSERT INTO cart_items(cart_id, item_id, store_id, store_name, name, size,
	    expiry_date, original_price, sale_price, quantity, image_url, stock, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		sid, it.ItemID, storeID, storeName, it.Name, it.Size,
		it.ExpiryDate, it.OriginalPrice, it.SalePrice, it.Quantity, it.ImageURL, stock)
	return err
}

func (r *CartRepo) SetQuantity(sid, itemID string, qty int) error {
	_, err := r.db.Exec(`UPDATE cart_items SET quantity = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND item_id = ?`, qty, sid, itemID)
	return err
}

func (r *CartRepo) Remove(sid, itemID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND item_id = ?`, sid, itemID)
	return err
}

// List returns lines in insertion order; rowid is stable under the
// quantity updates this repo performs.
func (r *CartRepo) List(sid string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT item_id, store_id, store_name, name, size, expiry_date,
	         original_price, sale_price, quantity, image_url, stock
	  FROM cart_items WHERE cart_id = ? ORDER BY rowid`, sid)
	return rows, err
}

func (r *CartRepo) Clear(sid string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, sid)
	return err
}
