// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables; the env-default
// tags document the fallback for every optional variable and env-required
// marks the ones that have none.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" env-default:"3333"`

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`

	// LogLevel controls the minimum log level.
	// Valid values: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	// CORSOrigins is a comma-separated list of allowed cross-origin request
	// origins, or "*" for any.
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`

	// APIBaseURL prefixes the confirmation links sent by email.
	APIBaseURL string `env:"API_BASE_URL" env-default:"http://localhost:3333"`

	// TimeZone is the IANA zone used to split a trip into calendar days and
	// to print dates in emails.
	TimeZone string `env:"TIMEZONE" env-default:"UTC"`

	// MaxBodyBytes caps request bodies.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" env-default:"1048576"`

	// SMTPHost selects real email delivery. When empty, emails are written
	// to the log instead.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" env-default:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	MailFromName    string `env:"MAIL_FROM_NAME" env-default:"Trip Planner"`
	MailFromAddress string `env:"MAIL_FROM_ADDRESS" env-default:"no-reply@trip-planner.local"`

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool `env:"MIGRATE_ON_START" env-default:"true"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error if a required variable is not set or a value cannot be used.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("config: MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}

	return cfg, nil
}

// Location resolves TimeZone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// AllowedOrigins splits CORSOrigins into a trimmed slice, ignoring empty entries.
func (c Config) AllowedOrigins() []string {
	var out []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
