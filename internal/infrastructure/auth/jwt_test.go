package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"friendbot/companion-api/internal/domain/user"
)

func newTestTokenService(t *testing.T, ttl time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", "companion-api", ttl, 30*time.Second, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return svc
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour)
	usr := &user.User{ID: 42, Username: "sam", Email: "sam@example.com"}

	token, expiresAt, err := svc.Issue(context.Background(), usr)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if until := time.Until(expiresAt); until < 23*time.Hour || until > 25*time.Hour {
		t.Errorf("expiry %s not about a day out", expiresAt)
	}

	claims, err := svc.Validate(context.Background(), token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("user id = %d, want 42", claims.UserID)
	}
	if claims.Username != "sam" || claims.Email != "sam@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.TokenID == "" {
		t.Error("jti missing")
	}
}

func TestValidateRejectsTamperedToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other, err := NewTokenService("other-secret", "companion-api", time.Hour, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, _, err := other.Issue(context.Background(), &user.User{ID: 1, Username: "eve"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := svc.Validate(context.Background(), token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc, err := NewTokenService("test-secret", "companion-api", time.Nanosecond, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, _, err := svc.Issue(context.Background(), &user.User{ID: 1, Username: "sam"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Validate(context.Background(), token); err == nil {
		t.Error("expired token must be rejected")
	}
}

func TestValidateIssuerMismatch(t *testing.T) {
	issuerA := newTestTokenService(t, time.Hour)
	issuerB, err := NewTokenService("test-secret", "someone-else", time.Hour, 0, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	token, _, err := issuerB.Issue(context.Background(), &user.User{ID: 1, Username: "sam"})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := issuerA.Validate(context.Background(), token); err == nil {
		t.Error("token from a different issuer must be rejected")
	}
}

func TestNewTokenServiceValidation(t *testing.T) {
	if _, err := NewTokenService("", "companion-api", time.Hour, 0, zerolog.Nop()); err == nil {
		t.Error("empty secret must be rejected")
	}
	if _, err := NewTokenService("secret", "companion-api", 0, 0, zerolog.Nop()); err == nil {
		t.Error("zero ttl must be rejected")
	}
}
