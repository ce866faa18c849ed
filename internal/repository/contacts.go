package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/greyfold/contactbook/internal/model"
)

// ContactFilter narrows List results. Page is 1-based.
type ContactFilter struct {
	Page     int
	Limit    int
	Favorite *bool
}

// ContactPatch carries the fields of a merge update; nil means
// "leave unchanged".
type ContactPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Favorite *bool
}

// Empty reports whether the patch changes nothing.
func (p ContactPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Favorite == nil
}

// Contacts persists address-book entries. Every operation is scoped
// to the owning user; an id that belongs to someone else behaves like
// a missing record.
type Contacts interface {
	List(ctx context.Context, owner uuid.UUID, filter ContactFilter) ([]model.Contact, int, error)
	GetByID(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error)
	Create(ctx context.Context, record *model.Contact) (*model.Contact, error)
	Update(ctx context.Context, owner, id uuid.UUID, patch ContactPatch) (*model.Contact, error)
	SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*model.Contact, error)
	Delete(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error)
}

type contacts struct {
	db *bun.DB
}

var _ Contacts = (*contacts)(nil)

// NewContactsRepository builds the bun-backed Contacts repository.
func NewContactsRepository(db *bun.DB) Contacts {
	return &contacts{db: db}
}

func (r *contacts) List(ctx context.Context, owner uuid.UUID, filter ContactFilter) ([]model.Contact, int, error) {
	var records []model.Contact

	q := r.db.NewSelect().Model(&records).
		Where("?TableAlias.owner_id = ?", owner)

	if filter.Favorite != nil {
		q = q.Where("?TableAlias.favorite = ?", *filter.Favorite)
	}

	total, err := q.
		Order("created_at ASC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.CategoryInternal, "failed to list contacts")
	}

	return records, total, nil
}

func (r *contacts) GetByID(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error) {
	record := &model.Contact{}

	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", owner).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapScan(err, "contact", map[string]any{"id": id.String()})
	}

	return record, nil
}

func (r *contacts) Create(ctx context.Context, record *model.Contact) (*model.Contact, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert contact")
	}

	return record, nil
}

func (r *contacts) Update(ctx context.Context, owner, id uuid.UUID, patch ContactPatch) (*model.Contact, error) {
	q := r.db.NewUpdate().Model((*model.Contact)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", owner)

	if patch.Name != nil {
		q = q.Set("name = ?", *patch.Name)
	}
	if patch.Email != nil {
		q = q.Set("email = ?", *patch.Email)
	}
	if patch.Phone != nil {
		q = q.Set("phone = ?", *patch.Phone)
	}
	if patch.Favorite != nil {
		q = q.Set("favorite = ?", *patch.Favorite)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update contact")
	}

	if err := requireAffected(res, "contact", map[string]any{"id": id.String()}); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, owner, id)
}

func (r *contacts) SetFavorite(ctx context.Context, owner, id uuid.UUID, favorite bool) (*model.Contact, error) {
	fav := favorite
	return r.Update(ctx, owner, id, ContactPatch{Favorite: &fav})
}

func (r *contacts) Delete(ctx context.Context, owner, id uuid.UUID) (*model.Contact, error) {
	record, err := r.GetByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	_, err = r.db.NewDelete().Model((*model.Contact)(nil)).
		Where("?TableAlias.id = ?", id).
		Where("?TableAlias.owner_id = ?", owner).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to delete contact")
	}

	return record, nil
}
