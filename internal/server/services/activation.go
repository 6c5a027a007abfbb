// Package services contains server-side business logic. This file implements
// ActivationCodeService, which issues, validates, and retires the single-use
// activation codes that gate account enablement.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/logging"
	"github.com/iKaueMatos/twitter-microservices/internal/server/config"
	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
	"github.com/iKaueMatos/twitter-microservices/internal/server/notify"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/repomanager"
)

// ActivationCodeService manages the lifecycle of activation codes:
// - SendNewCode: replace any prior code for the account and dispatch a fresh one
// - FindByKey / CheckExpiration: validation steps used by activation
// - DeleteByID: consumption after a successful activation
type ActivationCodeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	codeTTL     time.Duration
	logger      logging.Logger
}

// NewActivationCodeService constructs an ActivationCodeService using
// repositories, the notification collaborator, and server config.
func NewActivationCodeService(db *sql.DB, m repomanager.RepositoryManager, n notify.Notifier, cfg *config.Config, l logging.Logger) *ActivationCodeService {
	return &ActivationCodeService{
		db:          db,
		repomanager: m,
		notifier:    n,
		codeTTL:     cfg.ActivationCodeTTL,
		logger:      l.With("module", "activation_code_service"),
	}
}

// SendNewCode issues a fresh activation code for the account and dispatches
// it. Any pre-existing code for the same account is superseded in the same
// transaction, so at most one code per account is ever authoritative.
func (s *ActivationCodeService) SendNewCode(ctx context.Context, account *models.Account) (*models.ActivationCode, error) {
	key := uuid.NewString()

	var code *models.ActivationCode
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.ActivationCodes(tx)
		if err := repo.DeleteByAccount(ctx, account.ID); err != nil {
			return fmt.Errorf("error superseding activation codes: %w", err)
		}
		var createErr error
		code, createErr = repo.Create(ctx, account.ID, key, s.codeTTL)
		return createErr
	}); err != nil {
		return nil, err
	}

	if err := s.notifier.SendActivationCode(ctx, account.Email, key); err != nil {
		// Dispatch failure is the notifier's concern; the code stays valid
		// and can be re-sent.
		s.logger.Warn(ctx, "activation code dispatch failed", "email", account.Email, "error", err.Error())
	}

	return code, nil
}

// FindByKey looks up an activation code by key. A consumed key behaves
// exactly like one that never existed: common.ErrNotFound.
func (s *ActivationCodeService) FindByKey(ctx context.Context, key string) (*models.ActivationCode, error) {
	return s.repomanager.ActivationCodes(s.db).FindByKey(ctx, key)
}

// CheckExpiration fails with common.ErrActivationCodeExpired when the code
// is past its expiry. It never mutates state, so the same expired key can
// be checked repeatedly with the same observable outcome.
func (s *ActivationCodeService) CheckExpiration(code *models.ActivationCode) error {
	if time.Now().After(code.ExpiresAt) {
		return common.ErrActivationCodeExpired
	}
	return nil
}

// DeleteByID removes the code on a transactional handle. The bool reports
// whether this caller actually consumed it.
func (s *ActivationCodeService) DeleteByID(ctx context.Context, db dbx.DBTX, id string) (bool, error) {
	return s.repomanager.ActivationCodes(db).DeleteByID(ctx, id)
}
