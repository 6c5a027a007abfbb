// This file implements TokenService, which persists and revokes the signed
// session tokens minted on login and answers token validation queries.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"time"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/server/auth"
	"github.com/iKaueMatos/twitter-microservices/internal/server/config"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/repomanager"
)

// TokenService mints stored copies of signed tokens and validates presented
// credentials. The stored row is what makes revocation effective: a token
// with a valid signature whose row has been deleted or replaced is invalid.
type TokenService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewTokenService constructs a TokenService using repositories and server config.
func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
	}
}

// Generate signs a fresh token for the account identity.
func (s *TokenService) Generate(accountID, email string) (string, error) {
	return auth.GenerateToken(accountID, email, s.jwtSecret, s.tokenValidity)
}

// Create persists the signed value for the account on the given handle.
// The orchestrator deletes the prior token first in the same transaction,
// so this is an insert into an empty slot.
func (s *TokenService) Create(ctx context.Context, db dbx.DBTX, accountID, value string) error {
	return s.repomanager.Tokens(db).Create(ctx, accountID, value)
}

// DeleteByAccount revokes the account's current token. Idempotent.
func (s *TokenService) DeleteByAccount(ctx context.Context, db dbx.DBTX, accountID string) error {
	return s.repomanager.Tokens(db).DeleteByAccount(ctx, accountID)
}

// IsValid reports the status of a presented credential. The signature and
// embedded expiration are verified locally; the store is then cross-checked
// so that revoked or replaced tokens are reported invalid even though their
// signature still verifies.
func (s *TokenService) IsValid(ctx context.Context, signed string) (string, error) {
	claims, err := auth.ParseToken(signed, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) || errors.Is(err, common.ErrInvalidToken) {
			return common.TokenStatusInvalid, nil
		}
		return "", err
	}

	stored, err := s.repomanager.Tokens(s.db).FindByAccount(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.TokenStatusInvalid, nil
		}
		return "", err
	}

	if subtle.ConstantTimeCompare([]byte(stored.Value), []byte(signed)) != 1 {
		// Signature-valid token superseded by a newer login.
		return common.TokenStatusInvalid, nil
	}

	return common.TokenStatusValid, nil
}
