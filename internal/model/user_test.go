package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greyfold/contactbook/internal/model"
)

func TestValidSubscription(t *testing.T) {
	assert.True(t, model.ValidSubscription("starter"))
	assert.True(t, model.ValidSubscription("pro"))
	assert.True(t, model.ValidSubscription("business"))

	assert.False(t, model.ValidSubscription("platinum"))
	assert.False(t, model.ValidSubscription(""))
	assert.False(t, model.ValidSubscription("Pro"))
}

func TestDefaultAvatarURL(t *testing.T) {
	url := model.DefaultAvatarURL("ada@example.com")
	assert.Contains(t, url, "https://www.gravatar.com/avatar/")
	assert.Contains(t, url, "d=identicon")

	// case and surrounding whitespace do not change the hash
	assert.Equal(t, url, model.DefaultAvatarURL("  ADA@Example.COM "))
	assert.NotEqual(t, url, model.DefaultAvatarURL("bob@example.com"))
}

func TestUserJSONHidesSecrets(t *testing.T) {
	token := "session-token"
	verification := "verification-token"
	user := model.User{
		Email:             "ada@example.com",
		PasswordHash:      "$2a$10$hash",
		Token:             &token,
		VerificationToken: &verification,
		Subscription:      model.SubscriptionStarter,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.NotContains(t, string(raw), "session-token")
	assert.NotContains(t, string(raw), "verification-token")
}

func TestPublicUser(t *testing.T) {
	user := model.User{
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Subscription: model.SubscriptionPro,
		AvatarURL:    "/avatars/a.png",
	}

	pub := user.Public()
	assert.Equal(t, "ada@example.com", pub.Email)
	assert.Equal(t, model.SubscriptionPro, pub.Subscription)
	assert.Equal(t, "/avatars/a.png", pub.AvatarURL)
}
