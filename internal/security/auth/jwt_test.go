package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, err := tm.GenerateToken(42, "Ivanov Ivan Ivanovich")
	if err != nil {
		t.Fatalf("expected token generation to succeed, got %v", err)
	}

	claims, err := tm.ValidateToken(token)
	if err != nil {
		t.Fatalf("expected token validation to succeed, got %v", err)
	}
	if claims.ClientID != 42 {
		t.Fatalf("expected client id 42, got %d", claims.ClientID)
	}
	if claims.FullName != "Ivanov Ivan Ivanovich" {
		t.Fatalf("unexpected full name %q", claims.FullName)
	}
}

func TestGenerateTokenRequiresClientID(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.GenerateToken(0, "nobody"); err == nil {
		t.Fatal("expected error for missing client id")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.GenerateToken(7, "client")
	if err != nil {
		t.Fatalf("expected token generation to succeed, got %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tm := &TokenManager{secret: "test-secret", issuer: "deposit-ledger", ttl: -time.Minute}

	token, err := tm.GenerateToken(7, "client")
	if err != nil {
		t.Fatalf("expected token generation to succeed, got %v", err)
	}

	if _, err := tm.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail for an expired token")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	if _, err := tm.ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected validation to fail for a malformed token")
	}
}
