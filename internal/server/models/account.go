// Package models holds the server-side persistence records for the
// credential lifecycle: accounts, activation codes, and session tokens.
package models

import "time"

// Account is the root identity record. Enabled is false from registration
// until the activation code is consumed; the transition is one-directional.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Enabled      bool
	CreatedAt    time.Time
}
