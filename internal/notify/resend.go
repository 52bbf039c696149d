package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend-backed sender.
func NewResendSender(apiKey string) (*ResendSender, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend: %w", ErrNoCredentials)
	}
	return &ResendSender{client: resend.NewClient(apiKey)}, nil
}

// Send submits the email and returns the Resend delivery id.
func (s *ResendSender) Send(ctx context.Context, email *Email) (string, error) {
	params := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send via resend: %w", err)
	}
	return sent.Id, nil
}
