package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gomail "gopkg.in/mail.v2"
)

// SMTPConfig holds SMTP endpoint configuration.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers email via SMTP.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates a sender with the given SMTP configuration.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("smtp: %w", ErrNoCredentials)
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send delivers the email and returns its generated message id. SMTP dialing
// has no context support; the dialer timeout bounds the call instead.
func (s *SMTPSender) Send(_ context.Context, email *Email) (string, error) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)

	m := gomail.NewMessage()
	m.SetHeader("From", email.From)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetHeader("Message-Id", id)
	m.SetBody("text/html", email.HTML)

	dialer := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	dialer.Timeout = 10 * time.Second

	if err := dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send via smtp: %w", err)
	}
	return id, nil
}
