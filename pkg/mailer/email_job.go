package mailer

// EmailJob is the JSON payload the API puts on the email queue. Either
// Template (with Data) or Text/HTML supplies the body; the worker renders
// templates before sending.
type EmailJob struct {
	To       string         `json:"to"`
	ReplyTo  string         `json:"reply_to,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "contact_notification" or "contact_receipt"
	Data     map[string]any `json:"data,omitempty"`
}

// Email is a rendered message ready for a Sender.
type Email struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
	Tag     string // provider-side tag for analytics; usually the template name
}
