package call

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	issuer, err := NewTokenIssuer("test-secret", time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue(42, 7, "Alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Room != "project-42" {
		t.Errorf("expected room project-42, got %q", claims.Room)
	}
	if claims.UserID != 7 || claims.UserName != "Alice" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := NewTokenIssuer("secret-a", time.Minute)
	b, _ := NewTokenIssuer("secret-b", time.Minute)

	token, err := a.Issue(1, 1, "x")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := b.Verify(token); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Minute); err == nil {
		t.Error("expected error for empty secret")
	}
}
