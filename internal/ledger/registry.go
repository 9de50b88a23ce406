// Package ledger implements the custody ledger core: the participant role
// registry, product records, lifecycle transitions and the per-product
// audit trail. Every mutation is authorized against the caller address and
// applied in a single transaction, so a rejected operation leaves no trace.
package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/veriga/internal/model"
	"github.com/erazemk/veriga/internal/store"
)

// RegisterManufacturer grants the manufacturer role to addr.
// Only the administrator may call this; registration is idempotent.
func RegisterManufacturer(ctx context.Context, db *sql.DB, caller, addr string) error {
	return grantRole(ctx, db, caller, addr, model.RoleManufacturer)
}

// RegisterDistributor grants the distributor role to addr.
func RegisterDistributor(ctx context.Context, db *sql.DB, caller, addr string) error {
	return grantRole(ctx, db, caller, addr, model.RoleDistributor)
}

// RegisterRetailer grants the retailer role to addr.
func RegisterRetailer(ctx context.Context, db *sql.DB, caller, addr string) error {
	return grantRole(ctx, db, caller, addr, model.RoleRetailer)
}

// grantRole adds addr to a role set after checking that the caller is the
// administrator. Roles are monotonic: there is no revocation operation.
func grantRole(ctx context.Context, db *sql.DB, caller, addr, role string) error {
	if addr == "" {
		return fmt.Errorf("%w: address must not be empty", model.ErrInvalidArgument)
	}

	admin, err := store.GetAdminAddress(ctx, db)
	if err != nil {
		return fmt.Errorf("resolving administrator: %w", err)
	}
	if caller != admin {
		return fmt.Errorf("%w: only the administrator can register a %s", model.ErrUnauthorized, role)
	}

	_, err = db.ExecContext(ctx,
		`INSERT OR IGNORE INTO roles (address, role, granted_by) VALUES (?, ?, ?)`,
		addr, role, caller,
	)
	if err != nil {
		return fmt.Errorf("granting %s role: %w", role, err)
	}
	return nil
}

// IsManufacturer reports whether addr holds the manufacturer role.
func IsManufacturer(ctx context.Context, db *sql.DB, addr string) (bool, error) {
	return hasRole(ctx, db, addr, model.RoleManufacturer)
}

// IsDistributor reports whether addr holds the distributor role.
func IsDistributor(ctx context.Context, db *sql.DB, addr string) (bool, error) {
	return hasRole(ctx, db, addr, model.RoleDistributor)
}

// IsRetailer reports whether addr holds the retailer role.
func IsRetailer(ctx context.Context, db *sql.DB, addr string) (bool, error) {
	return hasRole(ctx, db, addr, model.RoleRetailer)
}

func hasRole(ctx context.Context, db *sql.DB, addr, role string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM roles WHERE address = ? AND role = ?`,
		addr, role,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking %s role: %w", role, err)
	}
	return count > 0, nil
}

// ListParticipants returns all role grants, ordered by grant time.
func ListParticipants(ctx context.Context, db *sql.DB) ([]model.Participant, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT address, role, granted_by, granted_at FROM roles ORDER BY granted_at, address`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing participants: %w", err)
	}
	defer rows.Close()

	var participants []model.Participant
	for rows.Next() {
		var p model.Participant
		if err := rows.Scan(&p.Address, &p.Role, &p.GrantedBy, &p.GrantedAt); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
