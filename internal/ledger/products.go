package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/veriga/internal/model"
)

// CreateProduct creates a new product owned by the calling manufacturer.
// The product row, its first history entry and a ProductCreated event are
// committed in one transaction; the new id is returned.
func CreateProduct(ctx context.Context, db *sql.DB, caller, name, location string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: product name must not be empty", model.ErrInvalidArgument)
	}
	if location == "" {
		return 0, fmt.Errorf("%w: initial location must not be empty", model.ErrInvalidArgument)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE address = ? AND role = ?`,
		caller, model.RoleManufacturer,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("checking manufacturer role: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: only a registered manufacturer can create products", model.ErrUnauthorized)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO products (name, manufacturer, current_owner, status, current_location)
		 VALUES (?, ?, ?, ?, ?)`,
		name, caller, caller, model.StatusCreated, location,
	)
	if err != nil {
		return 0, fmt.Errorf("creating product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting product id: %w", err)
	}

	entry := fmt.Sprintf("Product Created: %s by %s at %s", name, caller, location)
	if err := appendHistory(ctx, tx, id, entry); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO product_events (id, product_id, kind) VALUES (?, ?, ?)`,
		uuid.NewString(), id, model.EventProductCreated,
	)
	if err != nil {
		return 0, fmt.Errorf("recording creation event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing product: %w", err)
	}

	return id, nil
}

// GetProduct returns a product snapshot including its history length.
func GetProduct(ctx context.Context, db *sql.DB, id int64) (*model.Product, error) {
	p := &model.Product{}
	var imageMime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT p.id, p.name, p.manufacturer, p.current_owner, p.status,
		        p.current_location, p.image_mime, p.created_at, p.updated_at,
		        (SELECT COUNT(*) FROM product_history h WHERE h.product_id = p.id)
		 FROM products p WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Manufacturer, &p.CurrentOwner, &p.Status,
		&p.CurrentLocation, &imageMime, &p.CreatedAt, &p.UpdatedAt, &p.HistoryLength)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: product %d", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	p.ImageMime = imageMime.String
	return p, nil
}

// GetProductHistory returns a product's full audit trail in append order.
func GetProductHistory(ctx context.Context, db *sql.DB, id int64) ([]model.HistoryEntry, error) {
	if err := productExists(ctx, db, id); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT product_id, seq, entry, recorded_at
		 FROM product_history WHERE product_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("getting product history: %w", err)
	}
	defer rows.Close()

	var history []model.HistoryEntry
	for rows.Next() {
		var h model.HistoryEntry
		if err := rows.Scan(&h.ProductID, &h.Seq, &h.Entry, &h.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// ListProducts returns all products ordered by id.
func ListProducts(ctx context.Context, db *sql.DB) ([]model.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, manufacturer, current_owner, status,
		        current_location, image_mime, created_at, updated_at
		 FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var imageMime sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Manufacturer, &p.CurrentOwner, &p.Status,
			&p.CurrentLocation, &imageMime, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p.ImageMime = imageMime.String
		products = append(products, p)
	}
	return products, rows.Err()
}

// SetProductImage stores a product photo. Only the current owner may attach
// one; the photo is not part of the audit history.
func SetProductImage(ctx context.Context, db *sql.DB, caller string, id int64, image []byte, mime string) error {
	var owner string
	err := db.QueryRowContext(ctx,
		`SELECT current_owner FROM products WHERE id = ?`, id,
	).Scan(&owner)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: product %d", model.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("getting product owner: %w", err)
	}
	if caller != owner {
		return fmt.Errorf("%w", model.ErrNotOwner)
	}

	_, err = db.ExecContext(ctx,
		`UPDATE products SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting product image: %w", err)
	}
	return nil
}

// GetProductImage returns a product's photo and MIME type.
func GetProductImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM products WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("%w: product %d", model.ErrNotFound, id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting product image: %w", err)
	}
	return image, mime.String, nil
}

func productExists(ctx context.Context, db *sql.DB, id int64) error {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE id = ?`, id,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking product: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("%w: product %d", model.ErrNotFound, id)
	}
	return nil
}

// appendHistory adds the next history entry for a product inside tx.
// History is append-only: this is the only write path to product_history.
func appendHistory(ctx context.Context, tx *sql.Tx, productID int64, entry string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO product_history (product_id, seq, entry)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM product_history WHERE product_id = ?), ?)`,
		productID, productID, entry,
	)
	if err != nil {
		return fmt.Errorf("appending history: %w", err)
	}
	return nil
}
