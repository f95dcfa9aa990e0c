package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dval/hmis/pkg/apperr"
)

// ErrNotFound is returned by repositories when no row matches the id and
// hospital scope.
var ErrNotFound = errors.New("record not found")

// ErrInvalidReference is returned when an insert or update names a patient,
// staff member, department or consultation that does not belong to the
// caller's hospital.
var ErrInvalidReference = errors.New("referenced record not found in hospital")

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNumericOutOfRange   = "22003"
)

// NotFound translates pgx.ErrNoRows into ErrNotFound.
func NotFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
// When constraint is non-empty the violated constraint must match it.
func IsUniqueViolation(err error, constraint string) bool {
	return isPgCode(err, codeUniqueViolation, constraint)
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation.
func IsForeignKeyViolation(err error) bool {
	return isPgCode(err, codeForeignKeyViolation, "")
}

// IsInvalidValue reports whether err is a CHECK constraint violation or a
// numeric value that does not fit its column.
func IsInvalidValue(err error) bool {
	return isPgCode(err, codeCheckViolation, "") || isPgCode(err, codeNumericOutOfRange, "")
}

func isPgCode(err error, code, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

// Translate maps a repository error to an application error. notFound is the
// client message for ErrNotFound; op labels unexpected store failures.
func Translate(err error, notFound, op string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound(notFound)
	case errors.Is(err, ErrInvalidReference), IsForeignKeyViolation(err):
		return apperr.BadRequest("Referenced patient, staff member or department does not exist")
	case IsInvalidValue(err):
		return apperr.BadRequest("Invalid field value")
	default:
		return apperr.Internal(op, err)
	}
}

// TranslateDelete is Translate for deletes: a foreign key violation there
// means other rows still point at the record, so it is a conflict rather
// than a bad reference.
func TranslateDelete(err error, notFound, op string) error {
	if IsForeignKeyViolation(err) {
		return apperr.Conflict("Record is still referenced by other records")
	}
	return Translate(err, notFound, op)
}
