// Package mailer delivers outbound notification email over SMTP.
package mailer

import (
	"context"
	"fmt"

	"github.com/goliatone/go-errors"
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Sender delivers account notifications. The account service treats a
// delivery failure as a request failure.
type Sender interface {
	SendVerification(ctx context.Context, to, verificationToken string) error
}

// Config holds SMTP transport settings plus the public base URL used
// to build verification links.
type Config struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string
	PublicBaseURL string
}

// Mailer is the gomail-backed Sender.
type Mailer struct {
	config Config
	dialer *gomail.Dialer
	logger zerolog.Logger
}

var _ Sender = (*Mailer)(nil)

// New creates a Mailer from explicit configuration.
func New(cfg Config, logger zerolog.Logger) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)

	return &Mailer{
		config: cfg,
		dialer: dialer,
		logger: logger,
	}
}

// SendVerification emails the confirmation link embedding the token.
func (m *Mailer) SendVerification(ctx context.Context, to, verificationToken string) error {
	link := fmt.Sprintf("%s/api/auth/verify/%s", m.config.PublicBaseURL, verificationToken)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Verify your email")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Welcome to Contactbook!</p><p>Please <a href="%s">verify your email</a> to activate your account.</p>`,
		link,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Msg("failed to send verification email")
		return errors.Wrap(err, errors.CategoryInternal, "failed to send verification email")
	}

	m.logger.Info().Str("to", to).Msg("verification email sent")
	return nil
}
