package httpapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/greyfold/contactbook/internal/account"
	"github.com/greyfold/contactbook/internal/auth"
	"github.com/greyfold/contactbook/internal/model"
	"github.com/greyfold/contactbook/internal/repository"
)

const (
	contextUserKey = "current_user"
	authScheme     = "Bearer"
)

// RequireAuth guards a route with bearer-token authorization. A token
// is honored only when it validates cryptographically, is unexpired,
// and equals the token stored on the user record; the equality check
// is what invalidates tokens after logout or a newer login.
func RequireAuth(tokens *auth.TokenService, users repository.Users) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, err := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		claims, err := tokens.Validate(raw)
		if err != nil {
			return account.ErrNotAuthorized
		}

		userID, err := claims.UserID()
		if err != nil {
			return account.ErrNotAuthorized
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return account.ErrNotAuthorized
		}

		if user.Token == nil || *user.Token != raw {
			return account.ErrNotAuthorized
		}

		c.Locals(contextUserKey, user)

		return c.Next()
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(c *fiber.Ctx) (*model.User, error) {
	user, ok := c.Locals(contextUserKey).(*model.User)
	if !ok || user == nil {
		return nil, account.ErrNotAuthorized
	}
	return user, nil
}

func tokenFromHeader(header string) (string, error) {
	l := len(authScheme)
	if len(header) > l+1 && strings.EqualFold(header[:l], authScheme) {
		token := strings.TrimSpace(header[l:])
		if token != "" {
			return token, nil
		}
	}
	return "", account.ErrNotAuthorized
}
