package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: Index for the transaction listings, which always sort
	// newest-first by issue time.
	`CREATE INDEX IF NOT EXISTS idx_transactions_issued_at
	     ON transactions(issued_at DESC)`,

	// Migration 2: Index for pending-transaction lookups.
	`CREATE INDEX IF NOT EXISTS idx_transactions_status
	     ON transactions(status)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
