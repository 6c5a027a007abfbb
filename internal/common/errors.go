// Package common defines shared constants and sentinel errors used across
// the authentication service. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Credential errors. ErrInvalidCredentials covers both an unknown email
	// and a wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountNotActivated = errors.New("account not activated")

	// Activation code lifecycle errors.
	ErrActivationCodeExpired = errors.New("activation code expired")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
