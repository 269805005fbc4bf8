package apperrors

import "errors"

// Sentinel errors forming the application error taxonomy. Services return
// these (optionally wrapped) and the request-boundary error handler maps
// them to HTTP statuses. Anything outside this set becomes a 500.
var (
	ErrValidation         = errors.New("invalid request")
	ErrDuplicateIdentity  = errors.New("user already exists with this email or username")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("not authorized")
	ErrForbidden          = errors.New("not authorized to access this resource")
	ErrNotFound           = errors.New("not found")
)
