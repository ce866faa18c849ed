package auth

import "github.com/google/uuid"

// NewVerificationToken returns a single-use, URL-safe random token for
// email confirmation links. Uniqueness per outstanding request is
// enforced by the unique column it is stored in.
func NewVerificationToken() string {
	return uuid.NewString()
}
