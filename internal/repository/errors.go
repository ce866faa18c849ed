package repository

import (
	"database/sql"

	"github.com/goliatone/go-errors"
)

func notFound(what string, metadata map[string]any) *errors.Error {
	return errors.New(what+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithMetadata(metadata)
}

func wrapScan(err error, what string, metadata map[string]any) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound(what, metadata)
	}
	return errors.Wrap(err, errors.CategoryInternal, "failed to query "+what)
}

func requireAffected(res sql.Result, what string, metadata map[string]any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "failed to read rows affected")
	}
	if n == 0 {
		return notFound(what, metadata)
	}
	return nil
}
