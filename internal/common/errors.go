// Package common defines shared constants and sentinel errors used across
// the storefront backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrUnavailable = errors.New("store unavailable")

	// Service-level errors.
	ErrValidation      = errors.New("invalid input")
	ErrUnauthenticated = errors.New("invalid credentials")
	ErrForbidden       = errors.New("insufficient permissions")
	ErrInternal        = errors.New("internal error")

	// Token lifecycle errors. Both surface as ErrUnauthenticated at the
	// HTTP edge; the distinction exists for internal callers only.
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
