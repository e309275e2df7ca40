package errors

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// reKeyField extracts the column from "Key (email)=(x) already exists.".
var reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)

// MapDBError translates database errors into AppError values:
//
//	context deadline / cancel -> Timeout / Canceled
//	pgx.ErrNoRows             -> NotFound
//	unique_violation          -> Conflict (Field set from the detail when possible)
//	not_null / check          -> Validation
//	other PgError             -> Internal
//
// Errors it does not recognize are returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(err, ErrCodeTimeout, "database request timed out")
	case errors.Is(err, context.Canceled):
		return Wrap(err, ErrCodeCanceled, "database request canceled")
	case errors.Is(err, pgx.ErrNoRows):
		return Wrap(err, ErrCodeNotFound, "record not found")
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		appErr := Wrap(pgErr, ErrCodeConflict, "a record with this value already exists")
		appErr.Field = conflictField(pgErr)
		return appErr
	case pgerrcode.NotNullViolation:
		appErr := Wrap(pgErr, ErrCodeValidation, "required field is missing")
		appErr.Field = pgErr.ColumnName
		return appErr
	case pgerrcode.CheckViolation:
		appErr := Wrap(pgErr, ErrCodeValidation, "field has an invalid value")
		appErr.Field = pgErr.ColumnName
		return appErr
	default:
		return Wrap(pgErr, ErrCodeInternal, "database error")
	}
}

func conflictField(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
		return m[1]
	}
	return ""
}
