package store

import (
	"context"
	"testing"

	"github.com/erazemk/veriga/internal/db"
)

func TestCreateAndGetAccount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, err := CreateAccount(ctx, database, "factory-1", "hash")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if a.Address != "factory-1" {
		t.Errorf("expected address %q, got %q", "factory-1", a.Address)
	}

	byAddr, err := GetAccountByAddress(ctx, database, "factory-1")
	if err != nil {
		t.Fatalf("GetAccountByAddress: %v", err)
	}
	if byAddr == nil || byAddr.ID != a.ID {
		t.Errorf("expected account %d, got %+v", a.ID, byAddr)
	}
}

func TestCreateAccountDuplicateAddress(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateAccount(ctx, database, "factory-1", "hash"); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := CreateAccount(ctx, database, "factory-1", "hash"); err == nil {
		t.Error("expected error for duplicate active address")
	}
}

func TestGetAccountMissing(t *testing.T) {
	database := db.NewTestDB(t)

	a, err := GetAccount(context.Background(), database, 42)
	if err != nil {
		t.Fatalf("GetAccount: %v", err)
	}
	if a != nil {
		t.Errorf("expected nil for missing account, got %+v", a)
	}
}

func TestListAccounts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateAccount(ctx, database, "factory-1", "hash")
	CreateAccount(ctx, database, "depot-1", "hash")

	accounts, err := ListAccounts(ctx, database)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("expected 2 accounts, got %d", len(accounts))
	}
}
