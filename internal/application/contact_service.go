package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-cms/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-cms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-portfolio-cms/pkg/mailer/templates"
)

// JobPublisher puts a JSON job on the email queue.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RequestMeta describes the HTTP request a submission came from.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type ContactService struct {
	Repo   repository.ContactMessageRepository
	Pub    JobPublisher // nil disables notifications
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewContactService(repo repository.ContactMessageRepository, pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *ContactService {
	return &ContactService{Repo: repo, Pub: pub, Cfg: cfg, Logger: logger}
}

// Submit stores the message and then queues the owner notification and the
// sender's receipt. Only the store write can fail the submission.
func (s *ContactService) Submit(ctx context.Context, m *entity.ContactMessage, meta RequestMeta) error {
	if err := s.Repo.Create(ctx, m); err != nil {
		return err
	}
	if s.Pub == nil || s.Cfg == nil || !s.Cfg.MailSendEnabled {
		return nil
	}

	msg := mailtpl.ContactMessage{ID: m.ID, Name: m.Name, Email: m.Email, Subject: m.Subject, Message: m.Message}
	at := m.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	jobs := []mailer.EmailJob{
		{
			To:       s.Cfg.NotifyEmail(),
			ReplyTo:  m.Email,
			Template: mailtpl.ContactNotification,
			Data: mailtpl.NewContactNotificationData(s.Cfg, msg,
				mailtpl.WithTime(at),
				mailtpl.WithIP(meta.IP),
				mailtpl.WithUserAgent(meta.UserAgent),
			),
		},
		{
			To:       m.Email,
			Template: mailtpl.ContactReceipt,
			Data:     mailtpl.NewContactReceiptData(s.Cfg, msg, mailtpl.WithTime(at)),
		},
	}
	for _, job := range jobs {
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{
				"template":   job.Template,
				"message_id": m.ID,
			}).Warn("publish contact email failed")
		}
	}
	return nil
}
