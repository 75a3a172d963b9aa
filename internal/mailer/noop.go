package mailer

import (
	"context"

	"go.uber.org/zap"

	"github.com/hsnr-erstiwoche/erstiwoche-api/pkg/logger"
)

// NopMailer logs instead of sending. Used in development when no SMTP
// host is configured.
type NopMailer struct{}

// NewNopMailer creates a new NopMailer.
func NewNopMailer() *NopMailer {
	return &NopMailer{}
}

// Send logs the message and drops it.
func (m *NopMailer) Send(_ context.Context, msg *Message) error {
	logger.Get().Info("email suppressed, no SMTP host configured",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// Ensure NopMailer implements Mailer
var _ Mailer = (*NopMailer)(nil)
