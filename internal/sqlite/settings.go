// Settings rows: opaque string values addressed by a unique string key.
// Last write wins; no history retained.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/pipeboard/pipeboard/pkg/types"
)

// GetSetting looks up one setting. A key that was never set reports ok=false
// with a nil error.
func (b *Backend) GetSetting(key string) (string, bool, error) {
	if key == "" {
		return "", false, types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return "", false, err
	}

	var value string
	err = db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting upserts one setting (insert-or-replace).
func (b *Backend) SetSetting(key, value string) error {
	if key == "" {
		return types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes one setting. Deleting an absent key is not an error.
func (b *Backend) DeleteSetting(key string) error {
	if key == "" {
		return types.ErrInvalidID
	}
	db, err := b.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}
