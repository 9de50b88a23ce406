package store

import (
	"context"
	"testing"

	"github.com/erazemk/veriga/internal/db"
)

func TestGetJWTSecret_GeneratesAndPersists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// First call should generate a secret.
	secret1, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 == "" {
		t.Fatal("expected non-empty secret")
	}
	if len(secret1) != 64 { // 32 bytes = 64 hex chars
		t.Fatalf("expected 64 hex chars, got %d", len(secret1))
	}

	// Second call should return the same secret.
	secret2, err := GetJWTSecret(ctx, database)
	if err != nil {
		t.Fatal(err)
	}
	if secret1 != secret2 {
		t.Fatalf("expected same secret, got %q and %q", secret1, secret2)
	}
}

func TestAdminAddressImmutable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SetAdminAddress(ctx, database, "admin"); err != nil {
		t.Fatalf("SetAdminAddress: %v", err)
	}

	// A second set must not overwrite the original value.
	if err := SetAdminAddress(ctx, database, "impostor"); err != nil {
		t.Fatalf("second SetAdminAddress: %v", err)
	}

	addr, err := GetAdminAddress(ctx, database)
	if err != nil {
		t.Fatalf("GetAdminAddress: %v", err)
	}
	if addr != "admin" {
		t.Errorf("expected admin address %q, got %q", "admin", addr)
	}
}

func TestGetAdminAddressUninitialized(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := GetAdminAddress(context.Background(), database)
	if err == nil {
		t.Error("expected error for uninitialized admin address")
	}
}
