package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/veriga/internal/model"
)

// ShipProduct transfers custody of a product from its current owner to
// toAddr, with the caller-supplied status and location. The ledger does not
// enforce a transition graph: any enumerated status from the current owner
// is accepted, which allows corrective reclassification.
func ShipProduct(ctx context.Context, db *sql.DB, caller string, id int64, toAddr, location, status string) error {
	status, err := model.ParseStatus(status)
	if err != nil {
		return err
	}
	if toAddr == "" {
		return fmt.Errorf("%w: destination address must not be empty", model.ErrInvalidArgument)
	}
	if location == "" {
		return fmt.Errorf("%w: location must not be empty", model.ErrInvalidArgument)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	owner, err := currentOwner(ctx, tx, id)
	if err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("%w: %s does not hold product %d", model.ErrNotOwner, caller, id)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET current_owner = ?, status = ?, current_location = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		toAddr, status, location, id,
	)
	if err != nil {
		return fmt.Errorf("transferring product: %w", err)
	}

	entry := fmt.Sprintf("Transferred from %s to %s (%s) at %s", owner, toAddr, status, location)
	if err := appendHistory(ctx, tx, id, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transfer: %w", err)
	}
	return nil
}

// UpdateProductStatus updates a product's status and location without
// changing custody; used by a holder to confirm receipt.
func UpdateProductStatus(ctx context.Context, db *sql.DB, caller string, id int64, status, location string) error {
	status, err := model.ParseStatus(status)
	if err != nil {
		return err
	}
	if location == "" {
		return fmt.Errorf("%w: location must not be empty", model.ErrInvalidArgument)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	owner, err := currentOwner(ctx, tx, id)
	if err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("%w: %s does not hold product %d", model.ErrNotOwner, caller, id)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET status = ?, current_location = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, location, id,
	)
	if err != nil {
		return fmt.Errorf("updating product status: %w", err)
	}

	entry := fmt.Sprintf("Status updated to %s at %s", status, location)
	if err := appendHistory(ctx, tx, id, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing status update: %w", err)
	}
	return nil
}

// MarkAsSold hands a product over to a consumer and sets the terminal Sold
// status. Further lifecycle calls on the product are not explicitly
// forbidden, but the consumer would have to make them as the new owner.
func MarkAsSold(ctx context.Context, db *sql.DB, caller string, id int64, consumerAddr, location string) error {
	if consumerAddr == "" {
		return fmt.Errorf("%w: consumer address must not be empty", model.ErrInvalidArgument)
	}
	if location == "" {
		return fmt.Errorf("%w: location must not be empty", model.ErrInvalidArgument)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	owner, err := currentOwner(ctx, tx, id)
	if err != nil {
		return err
	}
	if caller != owner {
		return fmt.Errorf("%w: %s does not hold product %d", model.ErrNotOwner, caller, id)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET current_owner = ?, status = ?, current_location = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		consumerAddr, model.StatusSold, location, id,
	)
	if err != nil {
		return fmt.Errorf("marking product sold: %w", err)
	}

	entry := fmt.Sprintf("Sold to %s at %s", consumerAddr, location)
	if err := appendHistory(ctx, tx, id, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sale: %w", err)
	}
	return nil
}

func currentOwner(ctx context.Context, tx *sql.Tx, id int64) (string, error) {
	var owner string
	err := tx.QueryRowContext(ctx,
		`SELECT current_owner FROM products WHERE id = ?`, id,
	).Scan(&owner)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("%w: product %d", model.ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("getting product owner: %w", err)
	}
	return owner, nil
}
