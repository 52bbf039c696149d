/*
Package config loads newsletter definitions from the configuration directory
and process settings from the environment.
*/
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Generation providers selectable per newsletter.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

const defaultTimezone = "US/Eastern"

// ErrNotFound reports a newsletter id with no config file behind it.
var ErrNotFound = errors.New("newsletter not found")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Schedule carries the delivery schedule. Only the timezone is read by the
// pipeline; the time and day fields drive the external cron trigger.
type Schedule struct {
	Time     string   `mapstructure:"time"`
	Days     []string `mapstructure:"days"`
	Timezone string   `mapstructure:"timezone"`
}

// Newsletter describes one newsletter: what to generate and where to send it.
type Newsletter struct {
	ID               string   `mapstructure:"-"`
	Name             string   `mapstructure:"name" validate:"required"`
	Model            string   `mapstructure:"model" validate:"required"`
	Prompt           string   `mapstructure:"prompt" validate:"required"`
	Provider         string   `mapstructure:"provider" validate:"oneof=anthropic gemini"`
	SubjectTemplate  string   `mapstructure:"subject_template" validate:"required"`
	SenderEmail      string   `mapstructure:"sender_email" validate:"required"`
	RecipientEmail   string   `mapstructure:"recipient_email" validate:"required,email"`
	MaxContinuations int      `mapstructure:"max_continuations" validate:"gte=0"`
	Schedule         Schedule `mapstructure:"schedule"`
}

// Path returns the expected config file location for a newsletter id.
func Path(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

// Load reads, defaults and validates the config for one newsletter id.
func Load(dir, id string) (*Newsletter, error) {
	v := viper.New()
	v.SetConfigName(id)
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read config for '%s': %w", id, err)
	}

	var n Newsletter
	if err := v.Unmarshal(&n); err != nil {
		return nil, fmt.Errorf("failed to parse config for '%s': %w", id, err)
	}

	n.ID = id
	if n.Provider == "" {
		n.Provider = ProviderAnthropic
	}
	if n.Schedule.Timezone == "" {
		n.Schedule.Timezone = defaultTimezone
	}

	if err := validate.Struct(&n); err != nil {
		return nil, fmt.Errorf("invalid config for '%s': %w", id, err)
	}

	return &n, nil
}
