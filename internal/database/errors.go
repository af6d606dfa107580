package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsInvalidDate reports whether PostgreSQL rejected a date or timestamp
// value: 22007 invalid_datetime_format or 22008 datetime_field_overflow.
func IsInvalidDate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22007" || pgErr.Code == "22008"
	}
	return false
}

// IsInvalidInput reports whether PostgreSQL rejected a parameter value
// (SQLSTATE class 22, data exception).
func IsInvalidInput(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "22")
	}
	return false
}

// IsForeignKeyViolation reports a 23503 error.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
