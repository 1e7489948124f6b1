package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tdp/popcorn-palace/internal/domain"
)

// mapError translates pgx failures into the domain's error kinds. Unique
// violations become conflicts and foreign key violations become missing
// records (the referenced parent row does not exist); anything else is
// surfaced as-is.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return domain.ErrConflict
		case pgerrcode.ForeignKeyViolation:
			return domain.ErrRecordNotFound
		}
	}

	return err
}

// mapDeleteError is mapError for DELETE statements, where a foreign key
// violation means the opposite of a missing record: the row exists and a
// child still references it, so the delete conflicts with concurrent work
// instead of the target being absent.
func mapDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return domain.ErrConflict
	}

	return mapError(err)
}
