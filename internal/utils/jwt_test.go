package utils

import (
	"testing"
	"time"
)

func init() {
	SetJWTSecret("test-secret-for-jwt-testing")
}

func TestGenerateToken_Roundtrip(t *testing.T) {
	token, err := GenerateToken(42, "alice", 24)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken returned empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, expected 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, expected %q", claims.Username, "alice")
	}
	if claims.Issuer != "checkmate" {
		t.Errorf("Issuer = %q, expected %q", claims.Issuer, "checkmate")
	}
}

func TestGenerateToken_Expiry(t *testing.T) {
	token, err := GenerateToken(1, "bob", 2)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}

	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if lifetime != 2*time.Hour {
		t.Errorf("token lifetime = %v, expected 2h", lifetime)
	}
}

func TestParseToken_Invalid(t *testing.T) {
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
	if _, err := ParseToken(""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "carol", 1)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("test-secret-for-jwt-testing")

	if _, err := ParseToken(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}
