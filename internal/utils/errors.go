package utils

import "errors"

// Common application errors used across services.
var (
	ErrNotFound          = errors.New("NOT_FOUND")
	ErrSlugExists        = errors.New("SLUG_EXISTS")
	ErrDuplicateUsername = errors.New("DUPLICATE_USERNAME")
	ErrDuplicateEmail    = errors.New("DUPLICATE_EMAIL")
	ErrInvalidStatus     = errors.New("INVALID_STATUS")
	ErrInvalidRole       = errors.New("INVALID_ROLE")
)
