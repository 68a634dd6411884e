package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full environment configuration. godotenv loads .env into
// the process environment first; env.Parse does the typed parsing.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DB_URL,required"`

	// PEM-encoded RSA public key the identity provider signs tokens with.
	IdentityPublicKey string `env:"IDENTITY_PUBLIC_KEY,required"`

	// bcrypt hash of the machine-to-machine API key. Empty disables the
	// internal endpoints.
	ServiceKeyHash      string `env:"SERVICE_API_KEY_HASH"`
	ServiceAccountEmail string `env:"SERVICE_ACCOUNT_EMAIL" envDefault:"service@saloonhub.internal"`

	TwilioAccountSID     string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken      string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber    string `env:"TWILIO_PHONE_NUMBER"`
	TwilioWhatsAppNumber string `env:"TWILIO_WHATSAPP_NUMBER"`

	CompletionSchedule string `env:"COMPLETION_CRON" envDefault:"*/15 * * * *"`

	AllowedOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
