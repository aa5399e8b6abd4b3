package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS products (
    id                 INTEGER PRIMARY KEY,
    name               TEXT NOT NULL,
    barcode            TEXT NOT NULL UNIQUE,
    total_quantity     INTEGER NOT NULL DEFAULT 0 CHECK (total_quantity >= 0),
    available_quantity INTEGER NOT NULL DEFAULT 0,
    image_url          TEXT,
    status             TEXT NOT NULL DEFAULT 'ACTIVE' CHECK (status IN ('ACTIVE', 'DISABLED')),
    order_index        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS officers (
    id           INTEGER PRIMARY KEY,
    badge_number TEXT NOT NULL UNIQUE,
    name         TEXT NOT NULL DEFAULT '',
    department   TEXT NOT NULL DEFAULT '',
    phone        TEXT NOT NULL DEFAULT '',
    notes        TEXT NOT NULL DEFAULT '',
    image_url    TEXT
);

-- Transactions deliberately carry no foreign keys: a full catalog
-- reconciliation replaces every product row and regenerates ids, so old
-- transactions may reference products that no longer exist. The history
-- is kept as-is rather than cascaded away.
CREATE TABLE IF NOT EXISTS transactions (
    id                INTEGER PRIMARY KEY,
    product_id        INTEGER NOT NULL,
    officer_id        INTEGER NOT NULL,
    quantity          INTEGER NOT NULL CHECK (quantity > 0),
    returned_quantity INTEGER NOT NULL DEFAULT 0 CHECK (returned_quantity >= 0),
    purpose           TEXT NOT NULL DEFAULT '',
    status            TEXT NOT NULL DEFAULT 'ISSUED' CHECK (status IN ('ISSUED', 'PARTIALLY_RETURNED', 'RETURNED')),
    issued_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    returned_at       DATETIME
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'admin',
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
