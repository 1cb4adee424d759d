package repos

import (
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// OrderRepo records orders placed through this gateway. The backend owns
// the orders themselves; this is the buyer-facing history the old UI kept
// nowhere at all.
type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const (
	OrderStatusPlaced = "PLACED"
	OrderStatusFailed = "FAILED"
)

type OrderRecord struct {
	ID              string          `db:"id" json:"id"`
	SessionID       string          `db:"session_id" json:"-"`
	ClientID        int             `db:"client_id" json:"-"`
	StoreID         int             `db:"store_id" json:"storeId"`
	StoreName       string          `db:"store_name" json:"store"`
	UpstreamOrderID int64           `db:"upstream_order_id" json:"orderId,omitempty"`
	PaymentMethod   string          `db:"payment_method" json:"paymentMethod"`
	Fulfillment     string          `db:"fulfillment" json:"fulfillment"`
	Total           decimal.Decimal `db:"total" json:"total"`
	Status          string          `db:"status" json:"status"`
	Error           string          `db:"error" json:"error,omitempty"`
	CreatedAt       string          `db:"created_at" json:"createdAt"`
}

func (r *OrderRepo) Record(rec OrderRecord) error {
	_, err := r.db.Exec(`
	  INSERT INTO orders(id, session_id, client_id, store_id, store_name,
	    upstream_order_id, payment_method, fulfillment, total, status, error, created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)`,
		rec.ID, rec.SessionID, rec.ClientID, rec.StoreID, rec.StoreName,
		rec.UpstreamOrderID, rec.PaymentMethod, rec.Fulfillment, rec.Total, rec.Status, rec.Error)
	return err
}

func (r *OrderRepo) ListByClient(clientID int) ([]OrderRecord, error) {
	out := []OrderRecord{}
	err := r.db.Select(&out, `
	  SELECT id, session_id, client_id, store_id, store_name, upstream_order_id,
	         payment_method, fulfillment, total, status, error, created_at
	  FROM orders WHERE client_id = ?
	  ORDER BY datetime(created_at) DESC, rowid DESC`, clientID)
	return out, err
}
