package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, err := GenerateToken(secret, 1, "factory-1")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}

	if claims.AccountID != 1 {
		t.Errorf("expected account_id 1, got %d", claims.AccountID)
	}
	if claims.Address != "factory-1" {
		t.Errorf("expected address 'factory-1', got %q", claims.Address)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _ := GenerateToken("secret1", 1, "factory-1")

	_, err := ValidateToken("secret2", token)
	if err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("secret", "not-a-token")
	if err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	secret := "test-secret-key"

	claims := Claims{
		AccountID: 1,
		Address:   "factory-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired-jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := ValidateToken(secret, signed); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokensHaveUniqueJTIs(t *testing.T) {
	secret := "test-secret-key"

	t1, _ := GenerateToken(secret, 1, "factory-1")
	t2, _ := GenerateToken(secret, 1, "factory-1")

	c1, _ := ValidateToken(secret, t1)
	c2, _ := ValidateToken(secret, t2)
	if c1.ID == c2.ID {
		t.Error("expected distinct JTIs for separate tokens")
	}
}
