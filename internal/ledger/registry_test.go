package ledger

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/erazemk/veriga/internal/db"
	"github.com/erazemk/veriga/internal/model"
	"github.com/erazemk/veriga/internal/store"
)

const adminAddr = "admin"

// newLedgerDB creates a test database with the administrator address set.
func newLedgerDB(t *testing.T) *sql.DB {
	t.Helper()
	database := db.NewTestDB(t)
	if err := store.SetAdminAddress(context.Background(), database, adminAddr); err != nil {
		t.Fatalf("SetAdminAddress: %v", err)
	}
	return database
}

func TestRegisterAndPredicates(t *testing.T) {
	database := newLedgerDB(t)
	ctx := context.Background()

	if err := RegisterManufacturer(ctx, database, adminAddr, "factory-1"); err != nil {
		t.Fatalf("RegisterManufacturer: %v", err)
	}
	if err := RegisterDistributor(ctx, database, adminAddr, "depot-1"); err != nil {
		t.Fatalf("RegisterDistributor: %v", err)
	}
	if err := RegisterRetailer(ctx, database, adminAddr, "shop-1"); err != nil {
		t.Fatalf("RegisterRetailer: %v", err)
	}

	checks := []struct {
		fn   func(context.Context, *sql.DB, string) (bool, error)
		addr string
		want bool
	}{
		{IsManufacturer, "factory-1", true},
		{IsManufacturer, "depot-1", false},
		{IsDistributor, "depot-1", true},
		{IsDistributor, "shop-1", false},
		{IsRetailer, "shop-1", true},
		{IsRetailer, "factory-1", false},
	}
	for _, c := range checks {
		got, err := c.fn(ctx, database, c.addr)
		if err != nil {
			t.Fatalf("role check for %s: %v", c.addr, err)
		}
		if got != c.want {
			t.Errorf("role check for %s: expected %v, got %v", c.addr, c.want, got)
		}
	}
}

func TestRegisterRequiresAdmin(t *testing.T) {
	database := newLedgerDB(t)
	ctx := context.Background()

	err := RegisterManufacturer(ctx, database, "intruder", "factory-1")
	if !errors.Is(err, model.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// The role set must be unchanged.
	is, err := IsManufacturer(ctx, database, "factory-1")
	if err != nil {
		t.Fatalf("IsManufacturer: %v", err)
	}
	if is {
		t.Error("expected factory-1 not to be registered")
	}
}

func TestRegisterIdempotent(t *testing.T) {
	database := newLedgerDB(t)
	ctx := context.Background()

	if err := RegisterRetailer(ctx, database, adminAddr, "shop-1"); err != nil {
		t.Fatalf("first RegisterRetailer: %v", err)
	}
	if err := RegisterRetailer(ctx, database, adminAddr, "shop-1"); err != nil {
		t.Fatalf("second RegisterRetailer: %v", err)
	}

	participants, err := ListParticipants(ctx, database)
	if err != nil {
		t.Fatalf("ListParticipants: %v", err)
	}
	if len(participants) != 1 {
		t.Errorf("expected 1 role grant, got %d", len(participants))
	}
}

func TestRegisterEmptyAddress(t *testing.T) {
	database := newLedgerDB(t)

	err := RegisterDistributor(context.Background(), database, adminAddr, "")
	if !errors.Is(err, model.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
