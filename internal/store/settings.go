package store

import (
	"context"
	"database/sql"
	"fmt"
)

// spreadsheetPathKey is the settings key holding the external file location.
const spreadsheetPathKey = "excel_path"

// GetSetting returns a settings value, or "" if the key is unset.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a settings value, replacing any existing one.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// GetSpreadsheetPath returns the configured external spreadsheet location,
// or "" if none has been set.
func GetSpreadsheetPath(ctx context.Context, db *sql.DB) (string, error) {
	return GetSetting(ctx, db, spreadsheetPathKey)
}

// SetSpreadsheetPath persists the external spreadsheet location.
func SetSpreadsheetPath(ctx context.Context, db *sql.DB, path string) error {
	return SetSetting(ctx, db, spreadsheetPathKey, path)
}
