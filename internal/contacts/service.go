// Package contacts implements the owner-scoped address-book
// operations.
package contacts

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog"

	"github.com/greyfold/contactbook/internal/model"
	"github.com/greyfold/contactbook/internal/repository"
)

const (
	// DefaultPage is used when the caller omits the page parameter.
	DefaultPage = 1
	// DefaultLimit is used when the caller omits the limit parameter.
	DefaultLimit = 20

	// defaultPhoneRegion anchors parsing of national-format numbers.
	defaultPhoneRegion = "US"
)

// ErrEmptyUpdate rejects merge updates that change nothing.
var ErrEmptyUpdate = errors.New("Body must have at least one field", errors.CategoryValidation).
	WithTextCode("EMPTY_UPDATE").
	WithCode(errors.CodeBadRequest)

// Page bundles a listing result with its pagination window.
type Page struct {
	Contacts []model.Contact `json:"contacts"`
	Page     int             `json:"page"`
	Limit    int             `json:"limit"`
	Total    int             `json:"total"`
}

// CreateInput carries the required fields of a new contact.
type CreateInput struct {
	Name  string
	Email string
	Phone string
}

// Service applies pagination defaults, phone normalization, and the
// merge-update rules on top of the repository.
type Service struct {
	repo   repository.Manager
	logger zerolog.Logger
}

// NewService wires the contacts service.
func NewService(repo repository.Manager, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the owner's contacts for the requested window.
func (s *Service) List(ctx context.Context, owner uuid.UUID, filter repository.ContactFilter) (*Page, error) {
	if filter.Page < 1 {
		filter.Page = DefaultPage
	}
	if filter.Limit < 1 {
		filter.Limit = DefaultLimit
	}

	records, total, err := s.repo.Contacts().List(ctx, owner, filter)
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []model.Contact{}
	}

	return &Page{
		Contacts: records,
		Page:     filter.Page,
		Limit:    filter.Limit,
		Total:    total,
	}, nil
}

// Get returns one contact of the owner.
func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error) {
	return s.repo.Contacts().GetByID(ctx, owner, id)
}

// Create stores a new contact for the owner.
func (s *Service) Create(ctx context.Context, owner uuid.UUID, in CreateInput) (*model.Contact, error) {
	record := &model.Contact{
		Name:    in.Name,
		Email:   in.Email,
		Phone:   normalizePhone(in.Phone),
		OwnerID: owner,
	}

	return s.repo.Contacts().Create(ctx, record)
}

// Update merges the provided fields into the contact. At least one
// field must be present.
func (s *Service) Update(ctx context.Context, owner, id uuid.UUID, patch repository.ContactPatch) (*model.Contact, error) {
	if patch.Empty() {
		return nil, ErrEmptyUpdate
	}

	if patch.Phone != nil {
		normalized := normalizePhone(*patch.Phone)
		patch.Phone = &normalized
	}

	return s.repo.Contacts().Update(ctx, owner, id, patch)
}

// SetFavorite flips the favorite flag.
func (s *Service) SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*model.Contact, error) {
	return s.repo.Contacts().SetFavorite(ctx, owner, id, favorite)
}

// Delete removes the contact and returns the removed record.
func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error) {
	return s.repo.Contacts().Delete(ctx, owner, id)
}

// normalizePhone formats parseable numbers as E.164; anything else is
// stored verbatim, since phone has no format constraint.
func normalizePhone(raw string) string {
	num, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
