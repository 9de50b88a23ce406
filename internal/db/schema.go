package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// products.id uses AUTOINCREMENT so ids are strictly increasing and never
// reused, and a rolled-back insert does not advance the visible sequence.
// product_history has no UPDATE or DELETE path anywhere in the codebase;
// UNIQUE(product_id, seq) keeps each trail dense and ordered.
const schema = `
CREATE TABLE IF NOT EXISTS accounts (
    id            INTEGER PRIMARY KEY,
    address       TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    deleted_at    DATETIME
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_address_active
    ON accounts(address) WHERE deleted_at IS NULL;

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS roles (
    address    TEXT NOT NULL,
    role       TEXT NOT NULL CHECK (role IN ('manufacturer', 'distributor', 'retailer')),
    granted_by TEXT NOT NULL,
    granted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (address, role)
);

CREATE TABLE IF NOT EXISTS products (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL,
    manufacturer     TEXT NOT NULL,
    current_owner    TEXT NOT NULL,
    status           TEXT NOT NULL CHECK (status IN (
        'Created', 'ShippedToDistributor', 'AtDistributor',
        'ShippedToRetailer', 'AtRetailer', 'Sold')),
    current_location TEXT NOT NULL,
    image            BLOB,
    image_mime       TEXT,
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS product_history (
    id          INTEGER PRIMARY KEY,
    product_id  INTEGER NOT NULL REFERENCES products(id),
    seq         INTEGER NOT NULL CHECK (seq > 0),
    entry       TEXT NOT NULL,
    recorded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (product_id, seq)
);

CREATE TABLE IF NOT EXISTS product_events (
    id         TEXT PRIMARY KEY,
    product_id INTEGER NOT NULL REFERENCES products(id),
    kind       TEXT NOT NULL,
    emitted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
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
