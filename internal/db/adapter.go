package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/flowdeck/flowdeck/internal/flow"
)

// BoardAdapter is the SQLite-backed persistence adapter: one row per
// principal holding the full item collection as a JSON document.
type BoardAdapter struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewBoardAdapter creates an adapter over an initialized database.
func NewBoardAdapter(db *sql.DB, log zerolog.Logger) *BoardAdapter {
	return &BoardAdapter{db: db, log: log}
}

// Load returns the item collection saved for principal. A missing row means
// an empty collection; a corrupt document degrades to an empty collection
// with a warning, never an error.
func (a *BoardAdapter) Load(principal string) ([]flow.Item, error) {
	var doc string
	err := a.db.QueryRow(`SELECT items_json FROM boards WHERE principal = ?`, principal).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []flow.Item
	if err := json.Unmarshal([]byte(doc), &items); err != nil {
		a.log.Warn().Str("principal", principal).Err(err).
			Msg("corrupt board document, starting from an empty collection")
		return nil, nil
	}
	return items, nil
}

// Save upserts the full item collection for principal.
func (a *BoardAdapter) Save(principal string, items []flow.Item) error {
	doc, err := json.Marshal(items)
	if err != nil {
		return err
	}

	_, err = a.db.Exec(`
		INSERT INTO boards (principal, items_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(principal) DO UPDATE SET
			items_json = excluded.items_json,
			updated_at = excluded.updated_at
	`, principal, string(doc), time.Now().Unix())
	return err
}
