package auth

import "errors"

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrInvalidUser   = errors.New("cannot issue a token for a user without id")
)
