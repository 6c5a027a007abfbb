// Package activationcodes declares the repository contract for activation
// codes in persistent storage.
package activationcodes

import (
	"context"
	"time"

	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and retiring
// activation codes.
type Repository interface {
	// Create stores a new activation code for accountID with an expiry of
	// now+validity and returns the stored record.
	Create(ctx context.Context, accountID string, key string, validity time.Duration) (*models.ActivationCode, error)

	// FindByKey looks up an activation code by its opaque key.
	// Implementations return common.ErrNotFound when the key is absent.
	FindByKey(ctx context.Context, key string) (*models.ActivationCode, error)

	// DeleteByID removes an activation code by id and reports whether a row
	// was actually removed. Deleting a non-existent code is not an error.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// DeleteByAccount removes every code belonging to accountID. Used when
	// a fresh code supersedes the previous one.
	DeleteByAccount(ctx context.Context, accountID string) error
}
