// Package account orchestrates the user lifecycle: register, verify,
// login, session use, and logout, plus subscription and avatar
// updates.
package account

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/uptrace/bun"

	"github.com/greyfold/contactbook/internal/auth"
	"github.com/greyfold/contactbook/internal/mailer"
	"github.com/greyfold/contactbook/internal/model"
	"github.com/greyfold/contactbook/internal/repository"
)

// Service enforces the account lifecycle invariants on top of the
// repositories.
type Service struct {
	repo   repository.Manager
	tokens *auth.TokenService
	mail   mailer.Sender
	logger zerolog.Logger
}

// NewService wires the lifecycle service.
func NewService(repo repository.Manager, tokens *auth.TokenService, mail mailer.Sender, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		mail:   mail,
		logger: logger,
	}
}

// Register creates an unverified account and dispatches the
// verification email. The email send runs inside the transaction so a
// delivery failure leaves no half-registered account behind.
func (s *Service) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	user := &model.User{}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := s.repo.Users().GetByEmailTx(ctx, tx, email); err == nil {
			return ErrEmailInUse
		} else if !goerrors.IsNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to check existing email")
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
		}

		verification := auth.NewVerificationToken()

		user.Email = email
		user.PasswordHash = hash
		user.Subscription = model.SubscriptionStarter
		user.AvatarURL = model.DefaultAvatarURL(email)
		user.VerificationToken = &verification
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}

		if user, err = s.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return err
		}

		return s.mail.SendVerification(ctx, user.Email, verification)
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration failed")
	}

	s.logger.Info().Str("email", user.Email).Msg("user registered")

	return user, nil
}

// Login verifies credentials, requires a verified email, and stores
// the freshly issued token as the user's only active session.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.repo.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := auth.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !user.Verify {
		return "", nil, ErrEmailNotVerified
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	// Persisting the token supersedes any previously issued one.
	if err := s.repo.Users().SetSessionToken(ctx, user.ID, &token); err != nil {
		return "", nil, err
	}

	user.Token = &token

	return token, user, nil
}

// Logout clears the stored session token; the bearer token stops
// authorizing immediately even though its signature stays valid.
func (s *Service) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Users().SetSessionToken(ctx, userID, nil)
}

// Current returns the profile for an authenticated user.
func (s *Service) Current(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return s.repo.Users().GetByID(ctx, userID)
}

// UpdateSubscription persists a new tier for the owner.
func (s *Service) UpdateSubscription(ctx context.Context, userID uuid.UUID, subscription string) (*model.User, error) {
	if !model.ValidSubscription(subscription) {
		return nil, ErrInvalidSubscription
	}

	return s.repo.Users().UpdateSubscription(ctx, userID, subscription)
}

// UpdateAvatar persists the reference of an already-stored image.
func (s *Service) UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*model.User, error) {
	return s.repo.Users().UpdateAvatarURL(ctx, userID, avatarURL)
}

// VerifyEmail confirms the address holding the token. The token is
// single-use: confirming clears it, so a second call finds no user.
func (s *Service) VerifyEmail(ctx context.Context, verificationToken string) error {
	user, err := s.repo.Users().GetByVerificationToken(ctx, verificationToken)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.repo.Users().MarkVerified(ctx, user.ID); err != nil {
		return err
	}

	s.logger.Info().Str("email", user.Email).Msg("email verified")

	return nil
}

// ResendVerification re-sends the notification with the outstanding
// token; the token is never regenerated.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.repo.Users().GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if goerrors.IsNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Verify || user.VerificationToken == nil {
		return ErrAlreadyVerified
	}

	return s.mail.SendVerification(ctx, user.Email, *user.VerificationToken)
}
