package helpers

import (
	"errors"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)

	access, exp, err := m.GenerateAccessToken("admin@example.com", "sess-1")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if time.Until(exp) > time.Minute || time.Until(exp) <= 0 {
		t.Errorf("unexpected expiry %v", exp)
	}
	claims, err := m.ParseAccessToken(access)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != "admin@example.com" || claims.SessionID != "sess-1" || claims.Subject != "admin@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := m.ParseRefreshToken(access); err == nil {
		t.Error("expected an access token to be rejected as a refresh token")
	}
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Second, time.Hour)
	token, _, err := m.GenerateAccessToken("u", "s")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ParseAccessToken(token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestJWTRequiresSession(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Minute, time.Hour)
	token, _, err := m.GenerateRefreshToken("u", "")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	if _, err := m.ParseRefreshToken(token); err == nil {
		t.Error("expected a token without a session id to be rejected")
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if !CompareHashAndPassword(hash, "s3cret-pass") {
		t.Error("expected the password to match its hash")
	}
	if CompareHashAndPassword(hash, "wrong") {
		t.Error("expected a wrong password to be rejected")
	}
	if CompareHashAndPassword("", "anything") {
		t.Error("expected an empty hash to reject everything")
	}
	if _, err := HashPassword("short"); !errors.Is(err, ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}
}
