package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Error kinds. Every error returned by a usecase either wraps one of these or
// is an unexpected store failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateResource = errors.New("already exists")
	ErrValidation        = errors.New("validation failed")
)

var (
	ErrUserNotFound         = fmt.Errorf("user %w", ErrNotFound)
	ErrServiceNotFound      = fmt.Errorf("service %w", ErrNotFound)
	ErrProfessionalNotFound = fmt.Errorf("professional %w", ErrNotFound)
	ErrAppointmentNotFound  = fmt.Errorf("appointment %w", ErrNotFound)
	ErrAuditLogNotFound     = fmt.Errorf("audit log %w", ErrNotFound)

	ErrEmailAlreadyExists        = fmt.Errorf("email %w", ErrDuplicateResource)
	ErrProfessionalAlreadyExists = fmt.Errorf("professional for this user %w", ErrDuplicateResource)

	ErrAppointmentNotFuture = fmt.Errorf("%w: appointment date must be in the future", ErrValidation)
	ErrBlankStatus          = fmt.Errorf("%w: appointment status must not be blank", ErrValidation)
	ErrInvalidPriceRange    = fmt.Errorf("%w: minimum price is greater than maximum price", ErrValidation)
	ErrInvalidTimeRange     = fmt.Errorf("%w: range start is after range end", ErrValidation)
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
