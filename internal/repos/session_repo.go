package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

type SessionRow struct {
	ID       string `db:"id"`
	Token    string `db:"token"`
	UserJSON string `db:"user_json"`
}

func (r *SessionRepo) Save(sid, token, userJSON string) error {
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id, token, user_json, last_seen)
	  VALUES(?,?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    token = excluded.token,
	    user_json = excluded.user_json,
	    last_seen = CURRENT_TIMESTAMP`, sid, token, userJSON)
	return err
}

// Get returns (nil, nil) for an unknown sid.
func (r *SessionRepo) Get(sid string) (*SessionRow, error) {
	var row SessionRow
	err := r.db.Get(&row, `SELECT id, token, user_json FROM sessions WHERE id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	_, _ = r.db.Exec(`UPDATE sessions SET last_seen = CURRENT_TIMESTAMP WHERE id = ?`, sid)
	return &row, nil
}

func (r *SessionRepo) Clear(sid string) error {
	_, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, sid)
	return err
}
