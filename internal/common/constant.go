// Package common contains shared constants and sentinel errors used across
// the authentication service components.
package common

// TokenStatusValid and TokenStatusInvalid are the two answers the token
// validation endpoint reports for a presented credential.
const (
	TokenStatusValid   = "valid"
	TokenStatusInvalid = "invalid"
)
