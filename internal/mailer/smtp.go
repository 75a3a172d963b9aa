package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/telemetry"
)

// SMTPConfig holds configuration for SMTPMailer
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer implements Mailer over SMTP using mailyak.
type SMTPMailer struct {
	config SMTPConfig
	addr   string
	auth   smtp.Auth
}

// NewSMTPMailer creates a new SMTPMailer.
func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	var auth smtp.Auth
	if config.Username != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}
	return &SMTPMailer{
		config: config,
		addr:   fmt.Sprintf("%s:%d", config.Host, config.Port),
		auth:   auth,
	}
}

// Send delivers the message. Each call builds a fresh mailyak instance
// because mailyak instances are not safe for concurrent reuse.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	_, span := telemetry.StartSpan(ctx, "mailer.smtp.send")
	defer span.End()

	span.SetAttributes(
		attribute.String("to", msg.To),
		attribute.String("subject", msg.Subject),
	)

	mail := mailyak.New(m.addr, m.auth)
	mail.From(m.config.From)
	if m.config.FromName != "" {
		mail.FromName(m.config.FromName)
	}
	mail.To(msg.To)
	mail.Subject(msg.Subject)
	mail.HTML().Set(msg.HTMLBody)
	if msg.TextBody != "" {
		mail.Plain().Set(msg.TextBody)
	}

	if err := mail.Send(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("failed to send email: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Ensure SMTPMailer implements Mailer
var _ Mailer = (*SMTPMailer)(nil)
