package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-portfolio-cms/pkg/mailer/templates"
)

// overQueue mimics the JSON round trip a job makes through RabbitMQ.
func overQueue(t *testing.T, job mailer.EmailJob) mailer.EmailJob {
	t.Helper()
	b, err := json.Marshal(job)
	if err != nil {
		t.Fatal(err)
	}
	var out mailer.EmailJob
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	return out
}

func TestBuildMessage(t *testing.T) {
	cfg := &config.Config{SiteName: "Alex Morgan", SiteURL: "https://example.com", AdminEmail: "owner@example.com"}
	msg := mailtpl.ContactMessage{ID: "m1", Name: "Bo", Email: "bo@example.com", Subject: "Hi", Message: "Hello"}
	at := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	resolver := mailtpl.StaticResolver{Geo: mailtpl.Geo{City: "Jakarta", Country: "Indonesia", Timezone: "Asia/Jakarta"}}

	t.Run("template with localized time", func(t *testing.T) {
		job := overQueue(t, mailer.EmailJob{
			To:       "owner@example.com",
			ReplyTo:  "bo@example.com",
			Template: mailtpl.ContactNotification,
			Data:     mailtpl.NewContactNotificationData(cfg, msg, mailtpl.WithTime(at), mailtpl.WithIP("203.0.113.7")),
		})
		m, err := buildMessage(context.Background(), resolver, job)
		if err != nil {
			t.Fatalf("buildMessage failed: %v", err)
		}
		if m.Subject != "[Alex Morgan] New message from Bo: Hi" {
			t.Errorf("unexpected subject %q", m.Subject)
		}
		if !strings.Contains(m.Text, "01 May 2024, 17:30 WIB") {
			t.Errorf("expected time in Jakarta, got text %q", m.Text)
		}
		if m.HTML == "" {
			t.Error("expected an html body")
		}
		if m.ReplyTo != "bo@example.com" || m.Tag != mailtpl.ContactNotification {
			t.Errorf("expected reply-to and tag to carry over, got %q %q", m.ReplyTo, m.Tag)
		}
	})

	t.Run("explicit subject wins", func(t *testing.T) {
		job := mailer.EmailJob{To: "bo@example.com", Subject: "Custom", Template: mailtpl.ContactReceipt, Data: mailtpl.NewContactReceiptData(cfg, msg)}
		m, err := buildMessage(context.Background(), nil, job)
		if err != nil {
			t.Fatalf("buildMessage failed: %v", err)
		}
		if m.Subject != "Custom" {
			t.Errorf("expected Custom, got %q", m.Subject)
		}
	})

	t.Run("raw job gets fallback subject", func(t *testing.T) {
		m, err := buildMessage(context.Background(), nil, mailer.EmailJob{To: "bo@example.com", Text: "plain"})
		if err != nil {
			t.Fatalf("buildMessage failed: %v", err)
		}
		if m.Subject != "Portfolio notification" || m.Text != "plain" {
			t.Errorf("unexpected message %+v", m)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		if _, err := buildMessage(context.Background(), nil, mailer.EmailJob{To: "bo@example.com", Template: "nope"}); err == nil {
			t.Error("expected an error for an unknown template")
		}
	})

	t.Run("no recipient", func(t *testing.T) {
		if _, err := buildMessage(context.Background(), nil, mailer.EmailJob{Text: "x"}); err == nil {
			t.Error("expected an error without a recipient")
		}
	})
}
