package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// OpenDB opens the gateway's local sqlite store. It holds only what the
// browser used to keep client-side: sessions, carts, and a log of orders
// placed through this gateway. Catalog data always comes from the backend.
func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Sessions: sid cookie -> upstream bearer token + serialized usuario
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  token TEXT NOT NULL DEFAULT '',
  user_json TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);

-- Carts, one per session
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,           -- same value as the 'sid' cookie
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  item_id    TEXT NOT NULL,
  store_id   INTEGER NOT NULL CHECK (store_id > 0),
  store_name TEXT NOT NULL,
  name       TEXT NOT NULL,
  size       TEXT NOT NULL DEFAULT '',
  expiry_date TEXT NOT NULL DEFAULT '',
  original_price NUMERIC NOT NULL DEFAULT 0,
  sale_price     NUMERIC NOT NULL DEFAULT 0,
  quantity   INTEGER NOT NULL CHECK (quantity >= 1),
  image_url  TEXT NOT NULL DEFAULT '',
  stock      INTEGER,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT,
  PRIMARY KEY (cart_id, item_id)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_store ON cart_items(cart_id, store_id);

-- Orders placed through this gateway (history, including failures)
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  client_id  INTEGER NOT NULL,
  store_id   INTEGER NOT NULL,
  store_name TEXT NOT NULL,
  upstream_order_id INTEGER,
  payment_method TEXT NOT NULL,
  fulfillment    TEXT NOT NULL,
  total  NUMERIC NOT NULL,
  status TEXT NOT NULL CHECK (status IN ('PLACED','FAILED')),
  error  TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_session ON orders(session_id);
CREATE INDEX IF NOT EXISTS idx_orders_client  ON orders(client_id);
`
	_, err := db.Exec(schema)
	return err
}
