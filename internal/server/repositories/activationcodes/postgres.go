// Package activationcodes provides a PostgreSQL-backed repository for the
// activation codes issued during registration.
package activationcodes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
)

// PostgresRepository implements CRUD operations for activation codes over
// dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new activation code for accountID expiring at now+validity.
func (r *PostgresRepository) Create(ctx context.Context, accountID string, key string, validity time.Duration) (*models.ActivationCode, error) {
	query := `
		INSERT INTO activation_codes (key, account_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	code := &models.ActivationCode{
		Key:       key,
		AccountID: accountID,
		ExpiresAt: time.Now().Add(validity),
	}
	err := r.db.QueryRowContext(ctx, query, key, accountID, code.ExpiresAt).Scan(&code.ID, &code.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return code, nil
}

// FindByKey returns the activation code row for the given key.
// If not found, it returns common.ErrNotFound.
func (r *PostgresRepository) FindByKey(ctx context.Context, key string) (*models.ActivationCode, error) {
	query := `
		SELECT id, key, account_id, created_at, expires_at
		FROM activation_codes
		WHERE key = $1
	`
	code := &models.ActivationCode{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&code.ID, &code.Key, &code.AccountID, &code.CreatedAt, &code.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return code, nil
}

// DeleteByID removes an activation code by id. The returned bool reports
// whether a row was removed, so a racing consumer can detect that it lost.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	query := `
		DELETE FROM activation_codes
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return affected > 0, nil
}

// DeleteByAccount removes every activation code belonging to accountID.
func (r *PostgresRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	query := `
		DELETE FROM activation_codes
		WHERE account_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
