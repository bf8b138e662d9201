package mail

import (
	"context"

	"github.com/recuperacasa/intake-api/internal/logger"
)

// LogSender writes messages to the process log instead of delivering
// them. Used when no SMTP relay is configured, so intake can run in
// development and staging without a mail channel.
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) Send(ctx context.Context, subject string, body string) error {
	logger.Mailer().Info("mail delivery skipped, SMTP not configured", "subject", subject, "body", body)
	return nil
}
