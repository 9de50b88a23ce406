package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	// Try to generate and insert first (safe against races).
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// SetAdminAddress records the administrator address on first run.
// The address is immutable: once a value exists it is never overwritten.
func SetAdminAddress(ctx context.Context, db *sql.DB, address string) error {
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('admin_address', ?)`,
		address,
	)
	if err != nil {
		return fmt.Errorf("storing admin_address: %w", err)
	}
	return nil
}

// GetAdminAddress returns the administrator address set at initialization.
func GetAdminAddress(ctx context.Context, db *sql.DB) (string, error) {
	var address string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'admin_address'`,
	).Scan(&address)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("admin address not initialized")
	}
	if err != nil {
		return "", fmt.Errorf("querying admin_address: %w", err)
	}
	return address, nil
}
