package mail

import (
	"context"
	"net/smtp"

	"github.com/recuperacasa/intake-api/internal/logger"
)

// SMTPSender delivers messages through an SMTP relay.
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	from     string
	to       string
}

func NewSMTPSender(host, port, username, password, from, to string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

func (s *SMTPSender) Send(ctx context.Context, subject string, body string) error {
	log := logger.Mailer()
	log.Debug("sending email", "to", s.to, "subject", subject)

	msg := []byte("From: " + s.from + "\r\n" +
		"To: " + s.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	// Relays without credentials (e.g. a local postfix) take nil auth.
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{s.to}, msg); err != nil {
		return err
	}

	log.Info("email sent", "to", s.to, "subject", subject)
	return nil
}
