// Package accounts declares the repository contract for account records.
package accounts

import (
	"context"

	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
)

// Repository defines the storage operations the credential lifecycle needs
// for accounts.
type Repository interface {
	// Create inserts a new account and returns it with its generated ID.
	// A duplicate email yields common.ErrAlreadyExists.
	Create(ctx context.Context, account *models.Account) (*models.Account, error)

	// ExistsByEmail reports whether an account with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetByEmail returns the account with the given email, or
	// common.ErrNotFound when absent.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns the account with the given id, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)

	// Enable flips the account's enabled flag to true. The transition is
	// one-directional; there is no corresponding disable.
	Enable(ctx context.Context, accountID string) error
}
