// This file implements AuthenticationService, the credential lifecycle
// engine: registration, password authentication, and account activation.
// Each account moves through pending-activation to active exactly once;
// there are no backward transitions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/logging"
	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
	"github.com/iKaueMatos/twitter-microservices/internal/server/passwords"
	"github.com/iKaueMatos/twitter-microservices/internal/server/profile"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/repomanager"
)

// AuthenticationService orchestrates the credential lifecycle over the
// account, activation-code, and token stores. It holds only immutable
// references to its collaborators, so a single instance is safe for
// concurrent use by many request handlers.
type AuthenticationService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	activation    *ActivationCodeService
	tokens        *TokenService
	profileClient profile.Client
	logger        logging.Logger
}

// NewAuthenticationService constructs the lifecycle engine from its collaborators.
func NewAuthenticationService(db *sql.DB, m repomanager.RepositoryManager, a *ActivationCodeService, t *TokenService, p profile.Client, l logging.Logger) *AuthenticationService {
	return &AuthenticationService{
		db:            db,
		repomanager:   m,
		activation:    a,
		tokens:        t,
		profileClient: p,
		logger:        l.With("module", "authentication_service"),
	}
}

// Register creates a disabled account for the email, delegates profile
// creation to the profile service, and issues an activation code.
//
// The preliminary existence check is an early exit; the unique constraint
// on email is the authoritative guard, so a concurrent duplicate surfaces
// as common.ErrAlreadyExists from Create. A profile-service failure
// propagates and leaves the account created without a code: an accepted
// partial-failure state resolved by an out-of-band resend.
func (s *AuthenticationService) Register(ctx context.Context, email, password, username string) (*models.Account, error) {
	repo := s.repomanager.Accounts(s.db)

	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking account existence: %w", err)
	}
	if exists {
		return nil, common.ErrAlreadyExists
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := repo.Create(ctx, &models.Account{
		Email:        email,
		PasswordHash: hash,
		Enabled:      false,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	s.logger.Info(ctx, "account created", "account_id", account.ID)

	profileID, err := s.profileClient.CreateProfile(ctx, username, email, time.Now())
	if err != nil {
		return nil, fmt.Errorf("error creating profile: %w", err)
	}
	s.logger.Info(ctx, "profile created", "profile_id", profileID)

	if _, err := s.activation.SendNewCode(ctx, account); err != nil {
		return nil, fmt.Errorf("error sending activation code: %w", err)
	}
	s.logger.Info(ctx, "activation code sent", "email", account.Email)

	return account, nil
}

// Authenticate verifies the credentials and mints a new session token.
//
// An unknown email and a wrong password produce the identical
// common.ErrInvalidCredentials so callers cannot enumerate accounts. A
// disabled account is reported before the password is compared. On success
// the previous token is deleted and the new one inserted in one
// transaction, preserving the single-active-token invariant under
// concurrent logins.
func (s *AuthenticationService) Authenticate(ctx context.Context, email, password string) (string, error) {
	account, err := s.repomanager.Accounts(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn(ctx, "authentication failed: account not found", "email", email)
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error finding account: %w", err)
	}

	if !account.Enabled {
		s.logger.Warn(ctx, "authentication failed: account not activated", "email", email)
		return "", common.ErrAccountNotActivated
	}

	if !passwords.Matches(password, account.PasswordHash) {
		s.logger.Warn(ctx, "authentication failed: invalid password", "email", email)
		return "", common.ErrInvalidCredentials
	}

	signed, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.tokens.DeleteByAccount(ctx, tx, account.ID); err != nil {
			return fmt.Errorf("error deleting token: %w", err)
		}
		return s.tokens.Create(ctx, tx, account.ID, signed)
	}); err != nil {
		return "", err
	}

	s.logger.Info(ctx, "token issued", "email", account.Email)
	return signed, nil
}

// Activate consumes an activation code and enables its account.
//
// The expiration check runs before consumption and has no side effects: an
// expired key leaves both the code and the account untouched. Consumption
// and enablement happen in one transaction, with the delete's affected-row
// count deciding a racing duplicate activation: the loser observes the code
// as already gone and reports common.ErrNotFound.
func (s *AuthenticationService) Activate(ctx context.Context, key string) error {
	code, err := s.activation.FindByKey(ctx, key)
	if err != nil {
		return err
	}

	if err := s.activation.CheckExpiration(code); err != nil {
		return err
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		consumed, err := s.activation.DeleteByID(ctx, tx, code.ID)
		if err != nil {
			return fmt.Errorf("error consuming activation code: %w", err)
		}
		if !consumed {
			return common.ErrNotFound
		}
		return s.repomanager.Accounts(tx).Enable(ctx, code.AccountID)
	}); err != nil {
		return err
	}

	s.logger.Info(ctx, "account activated", "account_id", code.AccountID)
	return nil
}
