package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (unknown city code, past flight date, details too long).
// The wrapped message is safe to show to the user.
// Handlers map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
