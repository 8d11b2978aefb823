package repository

import (
	"database/sql"
	"errors"

	"modernc.org/sqlite"
)

// Extended result code for a UNIQUE constraint violation.
const sqliteConstraintUnique = 2067

// MapError translates database errors to domain errors.
// It maps sql.ErrNoRows to notFoundErr and a SQLite unique constraint
// violation to duplicateErr. Other errors are returned unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var se *sqlite.Error
	if errors.As(err, &se) && se.Code() == sqliteConstraintUnique {
		return duplicateErr
	}

	return err
}
