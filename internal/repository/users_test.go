package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/greyfold/contactbook/internal/model"
)

func setupDB(t *testing.T) (*bun.DB, func()) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())

	_, err = bunDB.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	require.NoError(t, CreateSchema(context.Background(), bunDB))

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return bunDB, cleanup
}

func seedUser(t *testing.T, repo Users, email string) *model.User {
	t.Helper()

	token := uuid.NewString()
	user, err := repo.Create(context.Background(), &model.User{
		Email:             email,
		PasswordHash:      "$2a$10$fakefakefakefakefakefake",
		VerificationToken: &token,
		AvatarURL:         model.DefaultAvatarURL(email),
	})
	require.NoError(t, err)
	return user
}

func TestUsersCreateAndGet(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, model.SubscriptionStarter, user.Subscription)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", byID.Email)
	assert.False(t, byID.Verify)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUsersEmailUnique(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	seedUser(t, repo, "dup@example.com")

	_, err := repo.Create(context.Background(), &model.User{
		Email:        "dup@example.com",
		PasswordHash: "hash",
	})
	assert.Error(t, err)
}

func TestUsersSessionToken(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")

	session := "session-token"
	require.NoError(t, repo.SetSessionToken(ctx, user.ID, &session))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Token)
	assert.Equal(t, session, *got.Token)

	require.NoError(t, repo.SetSessionToken(ctx, user.ID, nil))

	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Token)

	err = repo.SetSessionToken(ctx, uuid.New(), &session)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUsersMarkVerified(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")
	require.NotNil(t, user.VerificationToken)

	found, err := repo.GetByVerificationToken(ctx, *user.VerificationToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	require.NoError(t, repo.MarkVerified(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.Verify)
	assert.Nil(t, got.VerificationToken)

	// the consumed token no longer resolves
	_, err = repo.GetByVerificationToken(ctx, *user.VerificationToken)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUsersUpdateSubscription(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")

	updated, err := repo.UpdateSubscription(ctx, user.ID, model.SubscriptionPro)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPro, updated.Subscription)

	_, err = repo.UpdateSubscription(ctx, uuid.New(), model.SubscriptionPro)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestUsersUpdateAvatarURL(t *testing.T) {
	db, cleanup := setupDB(t)
	defer cleanup()

	repo := NewUsersRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ada@example.com")

	updated, err := repo.UpdateAvatarURL(ctx, user.ID, "/avatars/custom.png")
	require.NoError(t, err)
	assert.Equal(t, "/avatars/custom.png", updated.AvatarURL)
}
