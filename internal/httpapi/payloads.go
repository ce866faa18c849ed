package httpapi

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-errors"

	"github.com/greyfold/contactbook/internal/repository"
)

// RegisterRequest payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required, validation.Length(6, 100)),
		)
	}, "Invalid registration payload")
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Password, validation.Required),
		)
	}, "Invalid login payload")
}

// SubscriptionRequest payload; the tier itself is checked by the
// account service against the allowed set.
type SubscriptionRequest struct {
	Subscription string `json:"subscription"`
}

// ResendVerificationRequest payload
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (r ResendVerificationRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, validation.Required, is.Email),
		)
	}, "missing required field email")
}

// CreateContactRequest payload
type CreateContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Validate will run validation rules
func (r CreateContactRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Name, validation.Required),
			validation.Field(&r.Email, validation.Required, is.Email),
			validation.Field(&r.Phone, validation.Required),
		)
	}, "Invalid contact payload")
}

// UpdateContactRequest is the merge-update payload; absent fields stay
// untouched. The at-least-one-field rule lives in the contacts
// service.
type UpdateContactRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Favorite *bool   `json:"favorite"`
}

// Validate will run validation rules
func (r UpdateContactRequest) Validate() *errors.Error {
	return errors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&r,
			validation.Field(&r.Email, is.Email),
		)
	}, "Invalid contact payload")
}

// Patch converts the payload into a repository patch.
func (r UpdateContactRequest) Patch() repository.ContactPatch {
	return repository.ContactPatch{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Favorite: r.Favorite,
	}
}

// FavoriteRequest payload
type FavoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

// Validate will run validation rules
func (r FavoriteRequest) Validate() *errors.Error {
	if r.Favorite == nil {
		return errors.New("Missing field favorite", errors.CategoryValidation).
			WithCode(errors.CodeBadRequest)
	}
	return nil
}
