// Package db opens and initializes the ledger's SQLite database.
//
// SQLite's single-writer model is what serializes ledger mutations: each
// lifecycle operation runs in one write transaction, so concurrent calls
// apply in a total order and readers only ever see committed state.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens a SQLite database connection and configures pragmas.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL lets queries run against a consistent snapshot while a lifecycle
	// operation holds the write lock; busy_timeout makes writers queue
	// instead of failing.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	return db, nil
}
