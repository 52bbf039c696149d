package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtmonrad/huginn/internal/config"
)

const validConfig = `{
  "name": "AI Weekly",
  "model": "claude-sonnet-4-20250514",
  "prompt": "Write a newsletter about AI developments this week.",
  "schedule": {"time": "08:00", "days": ["monday"], "timezone": "US/Eastern"},
  "subject_template": "AI Weekly – {date}",
  "sender_email": "AI Weekly <news@example.com>",
  "recipient_email": "reader@example.com"
}`

func writeConfig(t *testing.T, dir, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "ai-weekly", validConfig)

	n, err := config.Load(dir, "ai-weekly")
	require.NoError(t, err)

	assert.Equal(t, "ai-weekly", n.ID)
	assert.Equal(t, "AI Weekly", n.Name)
	assert.Equal(t, "claude-sonnet-4-20250514", n.Model)
	assert.Equal(t, config.ProviderAnthropic, n.Provider)
	assert.Equal(t, "US/Eastern", n.Schedule.Timezone)
	assert.Equal(t, []string{"monday"}, n.Schedule.Days)
	assert.Equal(t, "AI Weekly – {date}", n.SubjectTemplate)
	assert.Equal(t, "reader@example.com", n.RecipientEmail)
	assert.Zero(t, n.MaxContinuations)
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "minimal", `{
	  "name": "Minimal",
	  "model": "claude-sonnet-4-20250514",
	  "prompt": "Write something.",
	  "subject_template": "Minimal – {date}",
	  "sender_email": "news@example.com",
	  "recipient_email": "reader@example.com"
	}`)

	n, err := config.Load(dir, "minimal")
	require.NoError(t, err)

	assert.Equal(t, config.ProviderAnthropic, n.Provider)
	assert.Equal(t, "US/Eastern", n.Schedule.Timezone)
}

func TestLoadGeminiProvider(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, "gem", `{
	  "name": "Gem",
	  "model": "gemini-2.5-flash",
	  "provider": "gemini",
	  "prompt": "Write something.",
	  "subject_template": "Gem – {date}",
	  "sender_email": "news@example.com",
	  "recipient_email": "reader@example.com"
	}`)

	n, err := config.Load(dir, "gem")
	require.NoError(t, err)
	assert.Equal(t, config.ProviderGemini, n.Provider)
}

func TestLoadNotFound(t *testing.T) {
	t.Parallel()

	_, err := config.Load(t.TempDir(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotFound)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `{"name": "broken"`},
		{"missing model", `{
		  "name": "No Model",
		  "prompt": "Write something.",
		  "subject_template": "X – {date}",
		  "sender_email": "news@example.com",
		  "recipient_email": "reader@example.com"
		}`},
		{"bad recipient", `{
		  "name": "Bad Recipient",
		  "model": "claude-sonnet-4-20250514",
		  "prompt": "Write something.",
		  "subject_template": "X – {date}",
		  "sender_email": "news@example.com",
		  "recipient_email": "not-an-address"
		}`},
		{"unknown provider", `{
		  "name": "Bad Provider",
		  "model": "claude-sonnet-4-20250514",
		  "provider": "cohere",
		  "prompt": "Write something.",
		  "subject_template": "X – {date}",
		  "sender_email": "news@example.com",
		  "recipient_email": "reader@example.com"
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeConfig(t, dir, "bad", tt.content)

			_, err := config.Load(dir, "bad")
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("newsletters", "biosecurity.json"), config.Path("newsletters", "biosecurity"))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("RESEND_API_KEY", "re_test")
	t.Setenv("EMAIL_PROVIDER", "smtp")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")

	e, err := config.LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "sk-ant-test", e.AnthropicAPIKey)
	assert.Equal(t, "re_test", e.ResendAPIKey)
	assert.Equal(t, "smtp", e.EmailProvider)
	assert.Equal(t, "smtp.example.com", e.SMTPHost)
	assert.Equal(t, 2525, e.SMTPPort)
	assert.Equal(t, "outbox", e.OutboxDir)
	assert.Equal(t, "info", e.LogLevel)
}

func TestLoadEnvBadPort(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := config.LoadEnv()
	assert.Error(t, err)
}
