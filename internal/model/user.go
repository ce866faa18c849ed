package model

import (
	"crypto/md5"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Subscription is the user's plan tier
type Subscription = string

const (
	// SubscriptionStarter is the tier every account starts on
	SubscriptionStarter Subscription = "starter"
	// SubscriptionPro is the paid individual tier
	SubscriptionPro Subscription = "pro"
	// SubscriptionBusiness is the team tier
	SubscriptionBusiness Subscription = "business"
)

// ValidSubscription reports whether s is a known tier.
func ValidSubscription(s string) bool {
	switch s {
	case SubscriptionStarter, SubscriptionPro, SubscriptionBusiness:
		return true
	}
	return false
}

// User is the account model. Token holds the current session
// credential; a token is only honored while it matches this column,
// which is what makes logout effective before natural expiry.
type User struct {
	bun.BaseModel     `bun:"table:users,alias:usr"`
	ID                uuid.UUID    `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email             string       `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash      string       `bun:"password_hash,notnull" json:"-"`
	Token             *string      `bun:"token" json:"-"`
	Verify            bool         `bun:"verify,notnull,default:false" json:"verify"`
	VerificationToken *string      `bun:"verification_token,unique,nullzero" json:"-"`
	Subscription      Subscription `bun:"subscription,notnull,default:'starter'" json:"subscription,omitempty"`
	AvatarURL         string       `bun:"avatar_url" json:"avatarURL,omitempty"`
	CreatedAt         *time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// PublicUser is the profile shape exposed over the API. Password
// hashes and tokens never leave the persistence layer.
type PublicUser struct {
	Email        string       `json:"email"`
	Subscription Subscription `json:"subscription"`
	AvatarURL    string       `json:"avatarURL"`
}

// Public returns the exposable profile for the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		Email:        u.Email,
		Subscription: u.Subscription,
		AvatarURL:    u.AvatarURL,
	}
}

// DefaultAvatarURL derives the placeholder avatar for an email. The
// gravatar scheme keys on the md5 of the lowercased address, so the
// result is stable for a given email.
func DefaultAvatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon", sum)
}
