package usecase

import "errors"

// Sentinel errors services wrap with %w; httpapi maps them to response
// statuses (invalid input 400, not found 404, unauthorized 401,
// dependency unavailable 503).
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
