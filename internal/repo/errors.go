package repo

import "errors"

var (
	// ErrNotFound is returned when a lookup or owner-scoped delete matches nothing.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateUsername and ErrDuplicateEmail are returned when an insert hits
	// the corresponding unique constraint. The constraints are the final authority:
	// a registration race that slips past the pre-checks still surfaces as one of
	// these, never as a generic failure.
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)
