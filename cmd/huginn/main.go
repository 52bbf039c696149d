package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jtmonrad/huginn/internal/ai"
	"github.com/jtmonrad/huginn/internal/config"
	"github.com/jtmonrad/huginn/internal/notify"
	"github.com/jtmonrad/huginn/internal/timezone"
)

var (
	configDir = flag.String("config-dir", "newsletters", "(-c) Directory containing newsletter config files")
	dryRun    = flag.Bool("dry-run", false, "(-n) Write the rendered email to the local outbox instead of sending")
)

func init() {
	flag.StringVar(configDir, "c", "newsletters", "(-c) Directory containing newsletter config files (shorthand)")
	flag.BoolVar(dryRun, "n", false, "(-n) Write the rendered email to the local outbox instead of sending (shorthand)")

	flag.Usage = func() {
		flagSet := flag.CommandLine
		fmt.Printf("Usage of %s:\n", "huginn")

		order := []string{
			"config-dir",
			"dry-run",
		}

		for _, name := range order {
			f := flagSet.Lookup(name)
			if f != nil {
				fmt.Printf("  -%s\n", f.Name)
				fmt.Printf("    %s\n", f.Usage)
			}
		}
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

// providerText holds the user-facing strings for a generation provider.
type providerText struct {
	Display string
	Vendor  string
	Secret  string
}

func describeProvider(provider string) providerText {
	if provider == config.ProviderGemini {
		return providerText{Display: "Gemini", Vendor: "Gemini", Secret: "GEMINI_API_KEY"}
	}
	return providerText{Display: "Claude", Vendor: "Anthropic", Secret: "ANTHROPIC_API_KEY"}
}

func buildGenerator(provider string, env *config.Env) (ai.Generator, error) {
	if provider == config.ProviderGemini {
		return ai.NewGeminiGenerator(env.GeminiAPIKey)
	}
	return ai.NewAnthropicGenerator(env.AnthropicAPIKey)
}

func buildSender(env *config.Env) (notify.Sender, error) {
	if *dryRun {
		return notify.NewOutboxSender(env.OutboxDir), nil
	}

	switch env.EmailProvider {
	case config.EmailResend:
		return notify.NewResendSender(env.ResendAPIKey)
	case config.EmailSMTP:
		return notify.NewSMTPSender(notify.SMTPConfig{
			Host:     env.SMTPHost,
			Port:     env.SMTPPort,
			Username: env.SMTPUsername,
			Password: env.SMTPPassword,
		})
	case config.EmailOutbox:
		return notify.NewOutboxSender(env.OutboxDir), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", env.EmailProvider)
	}
}

func exitGeneration(err error, p providerText) {
	if errors.Is(err, ai.ErrAuthentication) {
		fmt.Printf("\nERROR: Invalid %s API key.\n", p.Vendor)
		fmt.Printf("Check your %s secret in GitHub Settings.\n", p.Secret)
	} else {
		fmt.Printf("\nERROR generating newsletter: %v\n", err)
	}
	os.Exit(1)
}

func exitDelivery(err error, provider string) {
	if errors.Is(err, notify.ErrNoCredentials) {
		if provider == config.EmailSMTP {
			fmt.Println("\nERROR: SMTP credentials not set.")
			fmt.Println("Check your SMTP_HOST, SMTP_USERNAME and SMTP_PASSWORD secrets in GitHub Settings.")
		} else {
			fmt.Println("\nERROR: RESEND_API_KEY not set.")
			fmt.Println("Check your RESEND_API_KEY secret in GitHub Settings.")
		}
	} else {
		fmt.Printf("\nERROR sending email: %v\n", err)
	}
	os.Exit(1)
}

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Println("Usage: huginn [flags] <newsletter-id>")
		fmt.Println("Example: huginn biosecurity")
		os.Exit(1)
	}
	id := flag.Arg(0)

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Printf("Fatal error reading environment: %v\n", err)
		os.Exit(1)
	}
	setupLogger(env.LogLevel)

	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("NEWSLETTER: %s\n", id)
	fmt.Println(strings.Repeat("=", 50))

	cfg, err := config.Load(*configDir, id)
	if err != nil {
		if errors.Is(err, config.ErrNotFound) {
			fmt.Printf("Error: Newsletter '%s' not found.\n", id)
			fmt.Printf("Expected config at: %s\n", config.Path(*configDir, id))
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Printf("Loaded: %s\n", cfg.Name)

	ctx := context.Background()
	now := timezone.Now(cfg.Schedule.Timezone)
	p := describeProvider(cfg.Provider)

	gen, err := buildGenerator(cfg.Provider, env)
	if err != nil {
		exitGeneration(err, p)
	}

	fmt.Printf("Calling %s (%s) with web search...\n", p.Display, cfg.Model)

	result, err := gen.Generate(ctx, ai.Request{
		Model:        cfg.Model,
		Prompt:       ai.ComposePrompt(cfg.Prompt, now.Format(timezone.LongDate)),
		MaxContinues: cfg.MaxContinuations,
	})
	if err != nil {
		exitGeneration(err, p)
	}
	fmt.Printf("Generated (%d chars, %d web searches)\n", len(result.Text), result.Searches)

	html, err := notify.NewRenderer().Render(cfg.Name, result.Text, now)
	if err != nil {
		fmt.Printf("\nERROR formatting newsletter: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("HTML formatted")

	sender, err := buildSender(env)
	if err != nil {
		exitDelivery(err, env.EmailProvider)
	}

	email := &notify.Email{
		From:    cfg.SenderEmail,
		To:      []string{cfg.RecipientEmail},
		Subject: notify.Subject(cfg.SubjectTemplate, now),
		HTML:    html,
	}

	fmt.Printf("Sending to %s...\n", cfg.RecipientEmail)
	deliveryID, err := sender.Send(ctx, email)
	if err != nil {
		exitDelivery(err, env.EmailProvider)
	}
	fmt.Printf("Sent! Delivery ID: %s\n", deliveryID)

	fmt.Println("\nDone! Check your inbox.")
}
