package models

import "time"

// ActivationCode is a single-use, time-bounded proof of email ownership.
// Key is an unguessable UUID string; at most one unconsumed code is kept
// per account (issuing a new one replaces the old).
type ActivationCode struct {
	ID        string
	Key       string
	AccountID string
	CreatedAt time.Time
	ExpiresAt time.Time
}
