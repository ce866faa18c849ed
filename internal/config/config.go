// Package config loads the process configuration from the environment
// once at startup. Components never read environment variables
// themselves; they receive the values they need through constructors.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
)

// Config holds every runtime setting for the contactbook server.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":3000"`

	// PublicBaseURL is used to build absolute links in outbound
	// email, e.g. the verification link.
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`

	DatabaseDSN string `env:"DATABASE_DSN"`

	// JWTSecret signs session tokens. There is deliberately no
	// default: an unset secret is a startup failure.
	JWTSecret          string `env:"JWT_SECRET"`
	TokenExpirationHrs int    `env:"TOKEN_EXPIRATION_HOURS" envDefault:"12"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"465"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	// AvatarDir is where uploaded avatars are written; the contents
	// are served under /avatars.
	AvatarDir string `env:"AVATAR_DIR" envDefault:"public/avatars"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to parse environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set", errors.CategoryInternal)
	}

	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must be set", errors.CategoryInternal)
	}

	if c.TokenExpirationHrs <= 0 {
		return errors.New("TOKEN_EXPIRATION_HOURS must be positive", errors.CategoryInternal)
	}

	return nil
}
