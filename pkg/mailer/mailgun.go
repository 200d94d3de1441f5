package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Mailgun sends through the Mailgun HTTP API. The client is built once and
// reused for every message.
type Mailgun struct {
	Domain string
	Sender string
	client *mg.MailgunImpl
}

var _ Sender = (*Mailgun)(nil)

// NewMailgun builds a sender for domain. apiBase selects the region
// (e.g. mg.APIBaseEU); empty keeps the US default.
func NewMailgun(domain, apiKey, sender, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{Domain: domain, Sender: sender, client: client}
}

// Send sends e. Text is always set as the plain alternative; HTML, ReplyTo
// and Tag are optional.
func (m *Mailgun) Send(ctx context.Context, e Email) error {
	msg := m.client.NewMessage(m.Sender, e.Subject, e.Text, e.To)
	if e.HTML != "" {
		msg.SetHtml(e.HTML)
	}
	if e.ReplyTo != "" {
		msg.SetReplyTo(e.ReplyTo)
	}
	if e.Tag != "" {
		if err := msg.AddTag(e.Tag); err != nil {
			return err
		}
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, _, err := m.client.Send(c, msg)
	return err
}
