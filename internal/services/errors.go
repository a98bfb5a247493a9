package services

import "errors"

// Define common service errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict") // e.g., duplicate email, state conflict
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidState       = errors.New("invalid state for operation")

	// ErrInvalidToken is the single collapsed rejection for the public
	// token-gated flows: wrong token, wrong status and missing job all map
	// here so the response never reveals which precondition failed.
	ErrInvalidToken = errors.New("invalid token")
)
