package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Delivery providers selectable via EMAIL_PROVIDER.
const (
	EmailResend = "resend"
	EmailSMTP   = "smtp"
	EmailOutbox = "outbox"
)

// Env holds process-level settings: API credentials, delivery provider
// selection and endpoints.
type Env struct {
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	ResendAPIKey    string `env:"RESEND_API_KEY"`

	EmailProvider string `env:"EMAIL_PROVIDER" envDefault:"resend"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername  string `env:"SMTP_USERNAME"`
	SMTPPassword  string `env:"SMTP_PASSWORD"`

	OutboxDir string `env:"OUTBOX_DIR" envDefault:"outbox"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadEnv reads process settings from the environment. A .env file in the
// working directory is applied first when present.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &e, nil
}
