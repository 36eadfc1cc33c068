// Package common contains shared constants and sentinel errors used across
// client and server layers of itemkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Registration constraint violations. The messages double as the
	// user-facing detail strings returned by the HTTP layer.
	ErrorEmailTaken    = errors.New("email already registered")
	ErrorUsernameTaken = errors.New("username already taken")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
