package contacts_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"

	"github.com/greyfold/contactbook/internal/contacts"
	"github.com/greyfold/contactbook/internal/model"
	"github.com/greyfold/contactbook/internal/repository"
)

func setupService(t *testing.T) (*contacts.Service, uuid.UUID, func()) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)

	bunDB := bun.NewDB(db, sqlitedialect.New())
	require.NoError(t, repository.CreateSchema(context.Background(), bunDB))

	repo := repository.NewManager(bunDB)

	owner, err := repo.Users().Create(context.Background(), &model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	svc := contacts.NewService(repo, zerolog.Nop())

	cleanup := func() {
		_ = bunDB.Close()
		_ = db.Close()
	}

	return svc, owner.ID, cleanup
}

func createContact(t *testing.T, svc *contacts.Service, owner uuid.UUID, name string) *model.Contact {
	t.Helper()
	record, err := svc.Create(context.Background(), owner, contacts.CreateInput{
		Name:  name,
		Email: name + "@example.com",
		Phone: "1",
	})
	require.NoError(t, err)
	return record
}

func TestListDefaults(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	for i := 0; i < 25; i++ {
		createContact(t, svc, owner, fmt.Sprintf("contact%02d", i))
	}

	page, err := svc.List(context.Background(), owner, repository.ContactFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, 25, page.Total)
	assert.Len(t, page.Contacts, 20)

	page2, err := svc.List(context.Background(), owner, repository.ContactFilter{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, page2.Page)
	assert.Len(t, page2.Contacts, 5)
}

func TestListEmptyBookReturnsEmptySlice(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	page, err := svc.List(context.Background(), owner, repository.ContactFilter{})
	require.NoError(t, err)
	require.NotNil(t, page.Contacts)
	assert.Len(t, page.Contacts, 0)
	assert.Equal(t, 0, page.Total)
}

func TestCreateKeepsUnparseablePhoneVerbatim(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record, err := svc.Create(context.Background(), owner, contacts.CreateInput{
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "1", record.Phone)
}

func TestCreateNormalizesValidPhone(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record, err := svc.Create(context.Background(), owner, contacts.CreateInput{
		Name:  "Ada",
		Email: "ada@example.com",
		Phone: "(202) 555-0143",
	})
	require.NoError(t, err)
	assert.Equal(t, "+12025550143", record.Phone)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record := createContact(t, svc, owner, "ada")

	_, err := svc.Update(context.Background(), owner, record.ID, repository.ContactPatch{})
	assert.ErrorIs(t, err, contacts.ErrEmptyUpdate)
}

func TestUpdateSingleField(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record := createContact(t, svc, owner, "ada")

	name := "Ada Lovelace"
	updated, err := svc.Update(context.Background(), owner, record.ID, repository.ContactPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, record.Email, updated.Email)
}

func TestSetFavoriteRoundTrip(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record := createContact(t, svc, owner, "ada")

	updated, err := svc.SetFavorite(context.Background(), owner, record.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Favorite)

	updated, err = svc.SetFavorite(context.Background(), owner, record.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Favorite)
}

func TestDeleteReturnsRecord(t *testing.T) {
	svc, owner, cleanup := setupService(t)
	defer cleanup()

	record := createContact(t, svc, owner, "ada")

	deleted, err := svc.Delete(context.Background(), owner, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, deleted.ID)

	_, err = svc.Get(context.Background(), owner, record.ID)
	assert.Error(t, err)
}
