package common

import "errors"

var (
	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Auth errors (missing or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
