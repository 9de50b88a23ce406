package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/veriga/internal/model"
)

// ListEvents returns emitted events, optionally filtered by product.
// Events are written in the same transaction as the mutation they describe,
// so an event is visible exactly when the mutation is.
func ListEvents(ctx context.Context, db *sql.DB, productID int64) ([]model.Event, error) {
	query := `SELECT id, product_id, kind, emitted_at FROM product_events`
	var args []any

	if productID > 0 {
		query += ` WHERE product_id = ?`
		args = append(args, productID)
	}
	query += ` ORDER BY emitted_at, id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Kind, &e.EmittedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
