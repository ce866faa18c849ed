package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/greyfold/contactbook/internal/account"
	"github.com/greyfold/contactbook/internal/storage"
)

// AuthHandler exposes the account lifecycle over HTTP.
type AuthHandler struct {
	accounts *account.Service
	avatars  *storage.AvatarStore
}

func NewAuthHandler(accounts *account.Service, avatars *storage.AvatarStore) *AuthHandler {
	return &AuthHandler{accounts: accounts, avatars: avatars}
}

// Register creates an account and sends the verification mail.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, err := h.accounts.Register(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user.Public(),
	})
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	token, user, err := h.accounts.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Public(),
	})
}

// Logout drops the stored session token, which invalidates the bearer
// token even though its signature stays valid.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	if err := h.accounts.Logout(c.UserContext(), user.ID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Current returns the authenticated user's profile.
func (h *AuthHandler) Current(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(user.Public())
}

// UpdateSubscription switches the user's tier.
func (h *AuthHandler) UpdateSubscription(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var payload SubscriptionRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	updated, err := h.accounts.UpdateSubscription(c.UserContext(), user.ID, payload.Subscription)
	if err != nil {
		return err
	}

	return c.JSON(updated.Public())
}

// UpdateAvatar stores the uploaded file and points the user at it.
func (h *AuthHandler) UpdateAvatar(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "missing file field avatar")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unreadable avatar upload")
	}
	defer file.Close()

	avatarURL, err := h.avatars.Save(user.ID, fileHeader.Filename, file)
	if err != nil {
		return err
	}

	updated, err := h.accounts.UpdateAvatar(c.UserContext(), user.ID, avatarURL)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"avatarURL": updated.AvatarURL,
	})
}

// Verify consumes the emailed verification token.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	token := c.Params("verificationToken")

	if err := h.accounts.VerifyEmail(c.UserContext(), token); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Verification successful",
	})
}

// ResendVerification mails the verification link again.
func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var payload ResendVerificationRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	if err := h.accounts.ResendVerification(c.UserContext(), payload.Email); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Verification email sent",
	})
}
