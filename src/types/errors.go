package types

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("operation not permitted for this role or scope")
	ErrNotFound        = errors.New("record not found")
	ErrConflict        = errors.New("conflicting state")
	ErrValidation      = errors.New("invalid input")
)
