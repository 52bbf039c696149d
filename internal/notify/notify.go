/*
Package notify turns generated newsletter text into a styled HTML email and
delivers it through the configured provider.
*/
package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jtmonrad/huginn/internal/timezone"
)

// ErrNoCredentials reports a delivery provider selected without the
// credentials it needs.
var ErrNoCredentials = errors.New("missing delivery credentials")

// Email is one outbound newsletter message.
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender delivers a rendered newsletter and returns the provider's delivery id.
type Sender interface {
	Send(ctx context.Context, email *Email) (string, error)
}

// Subject renders a subject template, substituting the {date} placeholder
// with the short localized date.
func Subject(tmpl string, now time.Time) string {
	return strings.ReplaceAll(tmpl, "{date}", now.Format(timezone.ShortDate))
}
