package templates

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-cms/config"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:    "portfolio",
		SiteName:   "Alex Morgan",
		SiteURL:    "https://example.com",
		AdminEmail: "owner@example.com",
	}
}

func TestRenderContactTemplates(t *testing.T) {
	msg := ContactMessage{
		ID:      "m1",
		Name:    "Bo <script>",
		Email:   "bo@example.com",
		Subject: "Project inquiry",
		Message: "Hello there",
	}
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)

	t.Run("notification", func(t *testing.T) {
		data := NewContactNotificationData(testConfig(), msg, WithTime(at), WithLocation("Lisbon, Portugal"))
		if data["RecipientEmail"] != "owner@example.com" {
			t.Errorf("expected owner as recipient, got %v", data["RecipientEmail"])
		}
		subject, text, html, err := Render(ContactNotification, data)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.Contains(subject, "[Alex Morgan] New message from Bo") {
			t.Errorf("unexpected subject %q", subject)
		}
		for _, want := range []string{"bo@example.com", "Project inquiry", "Hello there", "01 May 2024, 10:30 UTC", "Lisbon, Portugal", "https://example.com/admin"} {
			if !strings.Contains(text, want) {
				t.Errorf("text body missing %q", want)
			}
		}
		if strings.Contains(html, "<script>") {
			t.Error("expected the sender name to be escaped in html")
		}
	})

	t.Run("receipt", func(t *testing.T) {
		data := NewContactReceiptData(testConfig(), msg)
		if data["RecipientEmail"] != "bo@example.com" {
			t.Errorf("expected sender as recipient, got %v", data["RecipientEmail"])
		}
		subject, text, html, err := Render(ContactReceipt, data)
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !strings.HasPrefix(subject, "Thanks for getting in touch") {
			t.Errorf("unexpected subject %q", subject)
		}
		if !strings.Contains(text, "Project inquiry") || !strings.Contains(html, "https://example.com") {
			t.Error("expected subject and site link in bodies")
		}
	})
}

func TestEveryTemplateRenders(t *testing.T) {
	for _, name := range Names {
		if _, _, _, err := Render(name, ToMap(EmailData{})); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate(3, "abcdef"); got != "abc..." {
		t.Errorf("expected abc..., got %q", got)
	}
	if got := truncate(10, "short"); got != "short" {
		t.Errorf("expected short, got %q", got)
	}
}

func TestWithGeoFromIP(t *testing.T) {
	ctx := context.Background()
	ok := StaticResolver{Geo: Geo{City: "Porto", Country: "Portugal"}}
	d := NewBaseEmailData(testConfig(), ContactNotification, "n", "e", "r", WithGeoFromIP(ctx, ok, "8.8.8.8"))
	if d.Location != "Porto, Portugal" {
		t.Errorf("expected Porto, Portugal, got %q", d.Location)
	}

	failing := StaticResolver{Err: errors.New("down")}
	d = NewBaseEmailData(testConfig(), ContactNotification, "n", "e", "r", WithGeoFromIP(ctx, failing, "8.8.8.8"))
	if d.Location != "" {
		t.Errorf("expected no location on lookup failure, got %q", d.Location)
	}
}

func TestIPAPIResolverSkipsPrivateAddresses(t *testing.T) {
	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "10.1.2.3", "192.168.0.10"} {
		if _, err := (IPAPIResolver{}).Lookup(context.Background(), ip); err == nil {
			t.Errorf("%q: expected an error without a network call", ip)
		}
	}
}
