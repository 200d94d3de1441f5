package templates

import (
	"context"
	"strings"
	"time"

	"github.com/oksasatya/go-portfolio-cms/config"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04 MST")
	}
}

func setLocation(d *EmailData, loc string) {
	if s := strings.TrimSpace(loc); s != "" {
		d.Location = s
	}
}

func WithLocation(loc string) Option {
	return func(d *EmailData) { setLocation(d, loc) }
}

func WithGeoFromIP(ctx context.Context, r GeoResolver, ip string) Option {
	return func(d *EmailData) {
		if r == nil || strings.TrimSpace(ip) == "" {
			return
		}
		if g, err := r.Lookup(ctx, ip); err == nil {
			setLocation(d, FormatGeo(g))
		}
	}
}

// ContactMessage is the part of a contact-form submission rendered in emails.
type ContactMessage struct {
	ID      string
	Name    string
	Email   string
	Subject string
	Message string
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ string, name, email, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: recipient,
		Type:           typ,

		SiteName: cfg.SiteName,
		SiteURL:  cfg.SiteURL,
		AppName:  cfg.AppName,
		LogoURL:  cfg.LogoURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewContactNotificationData is sent to the site owner for every message.
func NewContactNotificationData(cfg *config.Config, m ContactMessage, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, ContactNotification, m.Name, m.Email, cfg.NotifyEmail(), opts...)
	d.MessageID = m.ID
	d.Subject = m.Subject
	d.Message = m.Message
	if cfg.SiteURL != "" {
		d.AdminURL = cfg.SiteURL + "/admin"
	}
	return ToMap(d)
}

// NewContactReceiptData is the acknowledgement sent back to the sender.
func NewContactReceiptData(cfg *config.Config, m ContactMessage, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, ContactReceipt, m.Name, m.Email, m.Email, opts...)
	d.MessageID = m.ID
	d.Subject = m.Subject
	d.Message = m.Message
	return ToMap(d)
}
