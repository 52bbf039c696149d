package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// OutboxSender writes rendered newsletters to a local directory instead of
// delivering them. Used for dry runs.
type OutboxSender struct {
	dir string
}

// NewOutboxSender creates a sender that writes into dir.
func NewOutboxSender(dir string) *OutboxSender {
	return &OutboxSender{dir: dir}
}

// Send writes the HTML document plus a JSON metadata sidecar and returns the
// HTML file name as the delivery id.
func (s *OutboxSender) Send(_ context.Context, email *Email) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create outbox directory %s: %w", s.dir, err)
	}

	name := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), slugify(email.Subject))

	htmlFile := name + ".html"
	if err := os.WriteFile(filepath.Join(s.dir, htmlFile), []byte(email.HTML), 0o644); err != nil {
		return "", fmt.Errorf("failed to write outbox email: %w", err)
	}

	meta := struct {
		From    string    `json:"from"`
		To      []string  `json:"to"`
		Subject string    `json:"subject"`
		SentAt  time.Time `json:"sent_at"`
	}{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		SentAt:  time.Now(),
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal outbox metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name+".json"), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write outbox metadata: %w", err)
	}

	return htmlFile, nil
}

func slugify(s string) string {
	slug := slugRe.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(slug, "-")
}
