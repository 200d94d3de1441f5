package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"
	_ "time/tzdata" // localized times without system zoneinfo

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-cms/config"
	"github.com/oksasatya/go-portfolio-cms/pkg/helpers"
	"github.com/oksasatya/go-portfolio-cms/pkg/mailer"
	mailtpl "github.com/oksasatya/go-portfolio-cms/pkg/mailer/templates"
)

const sendTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.WithError(err).Fatal("amqp dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.WithError(err).Fatal("amqp channel")
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch between workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.WithError(err).Fatal("qos")
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEmailQueue, true, false, false, false, nil); err != nil {
		logger.WithError(err).Fatal("queue declare")
	}
	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.WithError(err).Fatal("consume")
	}

	var sender mailer.Sender = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunAPIBase)
	resolver := mailtpl.IPAPIResolver{}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			var job mailer.EmailJob
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad message")
				_ = msg.Nack(false, false)
				continue
			}
			log := logger.WithFields(logrus.Fields{"template": job.Template, "to": job.To})

			m, err := buildMessage(ctx, resolver, job)
			if err != nil {
				log.WithError(err).Error("render failed")
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, sendTimeout)
			err = sender.Send(c, m)
			cancel()
			if err != nil {
				log.WithError(err).Warn("send failed, requeueing")
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
			log.Info("email sent")
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-ctx.Done()
	logger.Info("shutting down")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// buildMessage renders a job. Jobs with a template get subject and bodies
// from it; the job's own Subject wins when set. Jobs without a template are
// sent as given.
func buildMessage(ctx context.Context, resolver mailtpl.GeoResolver, job mailer.EmailJob) (mailer.Email, error) {
	helpers.EnsureRecipientAndEmail(&job)
	helpers.LocalizeTimesIfPossible(ctx, resolver, job.Data)

	m := mailer.Email{To: job.To, ReplyTo: job.ReplyTo, Subject: job.Subject, Text: job.Text, HTML: job.HTML, Tag: job.Template}
	if strings.TrimSpace(m.To) == "" {
		return mailer.Email{}, fmt.Errorf("job has no recipient")
	}
	if job.Template != "" {
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return mailer.Email{}, fmt.Errorf("render %s: %w", job.Template, err)
		}
		if m.Subject == "" {
			m.Subject = strings.TrimSpace(s)
		}
		m.Text, m.HTML = t, h
	}
	if m.Subject == "" {
		m.Subject = helpers.SubjectFallback(job)
	}
	return m, nil
}
