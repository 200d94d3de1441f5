package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-portfolio-cms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-portfolio-cms/pkg/mailer/templates"
)

// SubjectFallback is used when a job carries neither a subject nor a
// template that renders one.
func SubjectFallback(job mailer.EmailJob) string {
	site := strings.TrimSpace(fmt.Sprintf("%v", job.Data["SiteName"]))
	if site == "" || site == "<nil>" {
		site = "Portfolio"
	}
	switch strings.ToLower(job.Template) {
	case mailtpl.ContactNotification:
		return "[" + site + "] New contact message"
	case mailtpl.ContactReceipt:
		return "Thanks for getting in touch"
	default:
		return site + " notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
