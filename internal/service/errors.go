package service

import "errors"

// Failure taxonomy shared by every service. Handlers translate these with
// errors.Is into HTTP statuses: validation/conflict 400, unauthenticated
// 401, forbidden 403, not found 404. Anything unwrapped is logged and
// surfaced as a generic 500.
var (
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
)
