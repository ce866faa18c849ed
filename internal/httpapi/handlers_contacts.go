package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"github.com/greyfold/contactbook/internal/contacts"
	"github.com/greyfold/contactbook/internal/repository"
)

// ContactsHandler exposes the per-user contact book over HTTP.
type ContactsHandler struct {
	contacts *contacts.Service
}

func NewContactsHandler(svc *contacts.Service) *ContactsHandler {
	return &ContactsHandler{contacts: svc}
}

// List returns one page of the owner's contacts, optionally filtered
// by favorite.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	page, err := h.contacts.List(c.UserContext(), user.ID, filter)
	if err != nil {
		return err
	}

	return c.JSON(page)
}

// Get returns one contact owned by the caller.
func (h *ContactsHandler) Get(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := contactID(c)
	if err != nil {
		return err
	}

	contact, err := h.contacts.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// Create adds a contact to the caller's book.
func (h *ContactsHandler) Create(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var payload CreateContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	contact, err := h.contacts.Create(c.UserContext(), user.ID, contacts.CreateInput{
		Name:  payload.Name,
		Email: payload.Email,
		Phone: payload.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// Update merges the provided fields into an existing contact.
func (h *ContactsHandler) Update(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := contactID(c)
	if err != nil {
		return err
	}

	var payload UpdateContactRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	contact, err := h.contacts.Update(c.UserContext(), user.ID, id, payload.Patch())
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// SetFavorite flips only the favorite flag.
func (h *ContactsHandler) SetFavorite(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := contactID(c)
	if err != nil {
		return err
	}

	var payload FavoriteRequest
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body")
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	contact, err := h.contacts.SetFavorite(c.UserContext(), user.ID, id, *payload.Favorite)
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// Delete removes a contact and returns the deleted record.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	user, err := CurrentUser(c)
	if err != nil {
		return err
	}

	id, err := contactID(c)
	if err != nil {
		return err
	}

	contact, err := h.contacts.Delete(c.UserContext(), user.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(contact)
}

// contactID parses the :contactID path segment. A malformed ID cannot
// match any record, so it reports not found rather than bad input.
func contactID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Params("contactID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("contact not found", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound).
			WithMetadata(map[string]any{"contact_id": raw})
	}
	return id, nil
}

func filterFromQuery(c *fiber.Ctx) (repository.ContactFilter, error) {
	filter := repository.ContactFilter{
		Page:  c.QueryInt("page", contacts.DefaultPage),
		Limit: c.QueryInt("limit", contacts.DefaultLimit),
	}

	if raw := c.Query("favorite"); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, errors.New("invalid favorite query parameter", errors.CategoryBadInput).
				WithCode(errors.CodeBadRequest)
		}
		filter.Favorite = &favorite
	}

	return filter, nil
}
