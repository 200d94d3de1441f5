package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-portfolio-cms/internal/application"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func TestRealIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{"cloudflare header wins", map[string]string{"CF-Connecting-IP": "203.0.113.9", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.9"},
		{"x-real-ip before forwarded-for", map[string]string{"X-Real-IP": "203.0.113.20", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.20"},
		{"ipv4-mapped address is unmapped", map[string]string{"X-Real-IP": "::ffff:203.0.113.21"}, "203.0.113.21"},
		{"left-most forwarded address", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, "198.51.100.1"},
		{"invalid headers fall back", map[string]string{"CF-Connecting-IP": "nope", "X-Forwarded-For": "also-nope"}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			var got string
			r.GET("/", RealIP(), func(c *gin.Context) { got = c.GetString(RealIPKey) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	var got string
	r.GET("/", RequestIDMiddleware(), func(c *gin.Context) { got = c.GetString("request_id") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if got == "" || w.Header().Get(RequestIDHeader) != got {
		t.Errorf("expected generated id echoed in header, got %q / %q", got, w.Header().Get(RequestIDHeader))
	}

	const incoming = "6f1c2a4e-0d8b-4d6b-9a53-5c0e7b2f1a11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got != incoming {
		t.Errorf("expected incoming id to be kept, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got == "<script>" {
		t.Error("expected an invalid incoming id to be replaced")
	}
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("request %d: expected 204, got %d", i, w.Code)
		}
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	for ip, want := range map[string]bool{"10.1.2.3": true, "127.0.0.1": true, "::ffff:192.168.1.4": true, "fd00::1": true, "203.0.113.9": false, "garbage": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Set(RealIPKey, ip)
		if got := allow(c); got != want {
			t.Errorf("%s: expected %v, got %v", ip, want, got)
		}
	}
}

type authorizerFunc func(ctx context.Context, token string) (*application.Session, error)

func (f authorizerFunc) Authorize(ctx context.Context, token string) (*application.Session, error) {
	return f(ctx, token)
}

func TestAuth(t *testing.T) {
	auth := authorizerFunc(func(_ context.Context, token string) (*application.Session, error) {
		switch token {
		case "good":
			return &application.Session{ID: "s1", UserID: application.AdminUserID, Email: "owner@example.com"}, nil
		case "expired":
			return nil, application.ErrSessionNotFound
		case "down":
			return nil, context.DeadlineExceeded
		default:
			return nil, application.ErrInvalidCredentials
		}
	})

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing cookie", "", http.StatusUnauthorized},
		{"valid session", "good", http.StatusOK},
		{"bad token", "forged", http.StatusUnauthorized},
		{"session gone", "expired", http.StatusUnauthorized},
		{"store down", "down", http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			var sid string
			r.GET("/", Auth(auth), func(c *gin.Context) {
				sid = c.GetString(CtxSessionIDKey)
				c.Status(http.StatusOK)
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: tc.token})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, w.Code)
			}
			if tc.want == http.StatusOK && sid != "s1" {
				t.Errorf("expected session id in context, got %q", sid)
			}
		})
	}
}
