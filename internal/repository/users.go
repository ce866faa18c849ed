package repository

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/greyfold/contactbook/internal/model"
)

// Users persists account records.
type Users interface {
	Create(ctx context.Context, record *model.User) (*model.User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *model.User) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*model.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*model.User, error)

	// SetSessionToken replaces the user's current session token;
	// passing nil clears it (logout).
	SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error

	// MarkVerified flips verify to true and clears the
	// verification token in a single statement.
	MarkVerified(ctx context.Context, id uuid.UUID) error

	UpdateSubscription(ctx context.Context, id uuid.UUID, subscription model.Subscription) (*model.User, error)
	UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) (*model.User, error)
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository builds the bun-backed Users repository.
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (r *users) Create(ctx context.Context, record *model.User) (*model.User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *model.User) (*model.User, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Subscription == "" {
		record.Subscription = model.SubscriptionStarter
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to insert user")
	}

	return record, nil
}

func (r *users) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	record := &model.User{}

	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapScan(err, "user", map[string]any{"id": id.String()})
	}

	return record, nil
}

func (r *users) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.GetByEmailTx(ctx, r.db, email)
}

func (r *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*model.User, error) {
	record := &model.User{}

	err := tx.NewSelect().Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapScan(err, "user", map[string]any{"email": email})
	}

	return record, nil
}

func (r *users) GetByVerificationToken(ctx context.Context, token string) (*model.User, error) {
	record := &model.User{}

	err := r.db.NewSelect().Model(record).
		Where("?TableAlias.verification_token = ?", token).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, wrapScan(err, "user", nil)
	}

	return record, nil
}

func (r *users) SetSessionToken(ctx context.Context, id uuid.UUID, token *string) error {
	res, err := r.db.NewUpdate().Model((*model.User)(nil)).
		Set("token = ?", token).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to update session token")
	}

	return requireAffected(res, "user", map[string]any{"id": id.String()})
}

func (r *users) MarkVerified(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewUpdate().Model((*model.User)(nil)).
		Set("verify = ?", true).
		Set("verification_token = NULL").
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to mark user verified")
	}

	return requireAffected(res, "user", map[string]any{"id": id.String()})
}

func (r *users) UpdateSubscription(ctx context.Context, id uuid.UUID, subscription model.Subscription) (*model.User, error) {
	res, err := r.db.NewUpdate().Model((*model.User)(nil)).
		Set("subscription = ?", subscription).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update subscription")
	}

	if err := requireAffected(res, "user", map[string]any{"id": id.String()}); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *users) UpdateAvatarURL(ctx context.Context, id uuid.UUID, avatarURL string) (*model.User, error) {
	res, err := r.db.NewUpdate().Model((*model.User)(nil)).
		Set("avatar_url = ?", avatarURL).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to update avatar")
	}

	if err := requireAffected(res, "user", map[string]any{"id": id.String()}); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}
