package service

import (
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed input to a mutation.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks operations referencing an id or version that is not present.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized marks operations requiring an identity the caller lacks,
	// and mutations crossing an ownership boundary.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrConflict marks writes rejected because of conflicting state.
	ErrConflict = errors.New("conflict")
	// ErrUpstream marks generation provider failures. Always recoverable.
	ErrUpstream = errors.New("upstream generation failed")
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// translateNoRows maps the driver's missing-row sentinel into the store's
// taxonomy; other storage errors pass through untouched.
func translateNoRows(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf("%s %s", entity, id)
	}
	return err
}
