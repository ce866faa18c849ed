package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/greyfold/contactbook/internal/account"
	"github.com/greyfold/contactbook/internal/auth"
	"github.com/greyfold/contactbook/internal/contacts"
	"github.com/greyfold/contactbook/internal/repository"
	"github.com/greyfold/contactbook/internal/storage"
)

// ServerDeps collects everything the HTTP layer needs.
type ServerDeps struct {
	Logger   zerolog.Logger
	Repo     repository.Manager
	Tokens   *auth.TokenService
	Accounts *account.Service
	Contacts *contacts.Service
	Avatars  *storage.AvatarStore
}

// NewServer builds the fiber app with all routes registered.
func NewServer(deps ServerDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: NewErrorHandler(deps.Logger),
	})

	app.Use(recover.New())
	app.Static("/avatars", deps.Avatars.Dir())

	requireAuth := RequireAuth(deps.Tokens, deps.Repo.Users())

	authHandler := NewAuthHandler(deps.Accounts, deps.Avatars)
	contactsHandler := NewContactsHandler(deps.Contacts)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify/:verificationToken", authHandler.Verify)
	authGroup.Post("/verify", authHandler.ResendVerification)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/current", requireAuth, authHandler.Current)
	authGroup.Patch("/subscription", requireAuth, authHandler.UpdateSubscription)
	authGroup.Patch("/avatars", requireAuth, authHandler.UpdateAvatar)

	contactsGroup := api.Group("/contacts", requireAuth)
	contactsGroup.Get("/", contactsHandler.List)
	contactsGroup.Post("/", contactsHandler.Create)
	contactsGroup.Get("/:contactID", contactsHandler.Get)
	contactsGroup.Put("/:contactID", contactsHandler.Update)
	contactsGroup.Patch("/:contactID/favorite", contactsHandler.SetFavorite)
	contactsGroup.Delete("/:contactID", contactsHandler.Delete)

	return app
}
