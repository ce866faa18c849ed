package account

import "github.com/goliatone/go-errors"

const (
	TextCodeEmailInUse          = "EMAIL_IN_USE"
	TextCodeInvalidCreds        = "INVALID_CREDENTIALS"
	TextCodeEmailNotVerified    = "EMAIL_NOT_VERIFIED"
	TextCodeNotAuthorized       = "NOT_AUTHORIZED"
	TextCodeInvalidSubscription = "INVALID_SUBSCRIPTION"
	TextCodeAlreadyVerified     = "ALREADY_VERIFIED"
	TextCodeUserNotFound        = "USER_NOT_FOUND"
)

// ErrEmailInUse is returned when registering with a taken email.
var ErrEmailInUse = errors.New("Email in use", errors.CategoryConflict).
	WithTextCode(TextCodeEmailInUse).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials covers both unknown email and wrong password
// with one message, so responses do not reveal which part failed.
var ErrInvalidCredentials = errors.New("Email or password is wrong", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrEmailNotVerified blocks login until the email is confirmed.
var ErrEmailNotVerified = errors.New("Email is not verified", errors.CategoryAuth).
	WithTextCode(TextCodeEmailNotVerified).
	WithCode(errors.CodeUnauthorized)

// ErrNotAuthorized is the generic bearer-auth failure.
var ErrNotAuthorized = errors.New("Not authorized", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthorized).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSubscription rejects tiers outside the allowed set.
var ErrInvalidSubscription = errors.New("Invalid subscription type", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidSubscription).
	WithCode(errors.CodeBadRequest)

// ErrAlreadyVerified rejects resend requests for verified accounts.
var ErrAlreadyVerified = errors.New("Verification has already been passed", errors.CategoryValidation).
	WithTextCode(TextCodeAlreadyVerified).
	WithCode(errors.CodeBadRequest)

// ErrUserNotFound is returned when no account matches a verification
// token or a resend email.
var ErrUserNotFound = errors.New("User not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)
