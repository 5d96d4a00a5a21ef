package services

import "errors"

// Error kinds. Services wrap these with fmt.Errorf("%w: ...") so
// controllers can map them to status codes with errors.Is while keeping
// a descriptive message.
var (
	// ErrNotFound covers both absent rows and rows owned by someone
	// else, so responses never reveal whether another user's row exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict covers duplicate category names and deletes blocked
	// by dependent diary entries.
	ErrConflict = errors.New("conflict")

	// ErrForbidden covers attempts to delete a default category.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput covers validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials covers failed login and bad refresh tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
