package repository

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/greyfold/contactbook/internal/model"
)

// CreateSchema creates the tables the server needs if they do not
// exist yet. It runs once at startup.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*model.User)(nil),
		(*model.Contact)(nil),
	}

	for _, m := range models {
		_, err := db.NewCreateTable().
			Model(m).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "failed to create schema")
		}
	}

	return nil
}
