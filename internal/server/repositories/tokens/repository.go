// Package tokens declares the repository contract for stored session tokens.
package tokens

import (
	"context"

	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
)

// Repository defines operations for persisting and revoking session tokens.
// The tokens table keeps at most one row per account; callers delete before
// they create.
type Repository interface {
	// Create stores the signed token value for accountID. A second row for
	// the same account yields common.ErrAlreadyExists.
	Create(ctx context.Context, accountID string, value string) error

	// FindByAccount returns the stored token for accountID, or
	// common.ErrNotFound when the account has no live token.
	FindByAccount(ctx context.Context, accountID string) (*models.Token, error)

	// DeleteByAccount removes the token for accountID. Deleting when no
	// token exists is not an error.
	DeleteByAccount(ctx context.Context, accountID string) error
}
