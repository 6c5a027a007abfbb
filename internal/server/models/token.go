package models

import "time"

// Token is the stored copy of a signed session credential. One row per
// account at most; a new login deletes the previous row before inserting.
type Token struct {
	ID        string
	AccountID string
	Value     string
	CreatedAt time.Time
}
