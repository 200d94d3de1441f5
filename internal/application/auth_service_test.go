package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := helpers.HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return NewAuthService(" Owner@Example.com ", hash, "Owner", jwt, NewMemorySessions(), quietLogger())
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	t.Run("valid credentials", func(t *testing.T) {
		admin, pair, err := svc.Login(ctx, "OWNER@example.com", "s3cret-pass")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if admin.Email != "owner@example.com" || admin.UserID != AdminUserID {
			t.Errorf("unexpected admin %+v", admin)
		}
		if pair.AccessToken == "" || pair.RefreshToken == "" {
			t.Error("expected both tokens")
		}
		sess, err := svc.Authorize(ctx, pair.AccessToken)
		if err != nil || sess == nil {
			t.Fatalf("expected a live session, got %v, %v", sess, err)
		}
	})

	cases := []struct {
		name, email, password string
	}{
		{"wrong password", "owner@example.com", "nope"},
		{"wrong email", "someone@example.com", "s3cret-pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Login(ctx, tc.email, tc.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}

	t.Run("login disabled without hash", func(t *testing.T) {
		disabled := newAuthService(t)
		disabled.AdminPasswordHash = ""
		if _, _, err := disabled.Login(ctx, "owner@example.com", ""); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestRefreshRotatesSession(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	_, first, err := svc.Login(ctx, "owner@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := svc.Authorize(ctx, second.AccessToken); err != nil {
		t.Errorf("expected new access token to work, got %v", err)
	}
	if _, err := svc.Authorize(ctx, first.AccessToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected old access token to lose its session, got %v", err)
	}
	if _, err := svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected reused refresh token to fail, got %v", err)
	}
	if _, err := svc.Refresh(ctx, second.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected access token to be rejected as refresh token, got %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)
	_, pair, _ := svc.Login(ctx, "owner@example.com", "s3cret-pass")
	sess, err := svc.Authorize(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("Authorize: %v", err)
	}

	if err := svc.Logout(ctx, sess.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Authorize(ctx, pair.AccessToken); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after logout, got %v", err)
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Errorf("expected empty logout to be a no-op, got %v", err)
	}
}

func TestMemorySessionsExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemorySessions()
	m.now = func() time.Time { return now }

	if err := m.Save(ctx, Session{ID: "s1", UserID: AdminUserID}, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s, _ := m.Get(ctx, "s1"); s == nil {
		t.Fatal("expected session before expiry")
	}
	now = now.Add(time.Minute)
	if s, _ := m.Get(ctx, "s1"); s != nil {
		t.Errorf("expected session to expire, got %+v", s)
	}
}
