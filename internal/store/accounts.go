package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/veriga/internal/model"
)

// CreateAccount creates a new account for a participant address.
func CreateAccount(ctx context.Context, db *sql.DB, address, passwordHash string) (*model.Account, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO accounts (address, password_hash) VALUES (?, ?)`,
		address, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting account id: %w", err)
	}

	return GetAccount(ctx, db, id)
}

// GetAccount returns an account by ID.
func GetAccount(ctx context.Context, db *sql.DB, id int64) (*model.Account, error) {
	a := &model.Account{}
	err := db.QueryRowContext(ctx,
		`SELECT id, address, password_hash, created_at, deleted_at
		 FROM accounts WHERE id = ?`, id,
	).Scan(&a.ID, &a.Address, &a.PasswordHash, &a.CreatedAt, &a.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}
	return a, nil
}

// GetAccountByAddress returns an account by address (including soft-deleted
// for auth checks).
func GetAccountByAddress(ctx context.Context, db *sql.DB, address string) (*model.Account, error) {
	a := &model.Account{}
	err := db.QueryRowContext(ctx,
		`SELECT id, address, password_hash, created_at, deleted_at
		 FROM accounts WHERE address = ?`, address,
	).Scan(&a.ID, &a.Address, &a.PasswordHash, &a.CreatedAt, &a.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting account by address: %w", err)
	}
	return a, nil
}

// ListAccounts returns all non-deleted accounts.
func ListAccounts(ctx context.Context, db *sql.DB) ([]model.Account, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, address, password_hash, created_at, deleted_at
		 FROM accounts WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Address, &a.PasswordHash, &a.CreatedAt, &a.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccountPassword updates an account's password hash.
func UpdateAccountPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE accounts SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating account password: %w", err)
	}
	return nil
}
