package model

import "time"

// Account is an authentication identity. Its address doubles as the
// caller identity for every ledger operation; the administrator's address
// is fixed in settings at first run.
type Account struct {
	ID           int64      `json:"id"`
	Address      string     `json:"address"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}
