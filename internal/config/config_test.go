package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greyfold/contactbook/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/contactbook")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTPAddr)
	assert.Equal(t, "http://localhost:3000", cfg.PublicBaseURL)
	assert.Equal(t, 12, cfg.TokenExpirationHrs)
	assert.Equal(t, 465, cfg.SMTPPort)
	assert.Equal(t, "public/avatars", cfg.AvatarDir)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/contactbook")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DSN", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidateRejectsNonPositiveExpiration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_DSN", "postgres://localhost:5432/contactbook")
	t.Setenv("TOKEN_EXPIRATION_HOURS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}
