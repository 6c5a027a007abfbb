// Package tokens provides a PostgreSQL-backed repository for session tokens.
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iKaueMatos/twitter-microservices/internal/common"
	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements CRUD operations for session tokens over
// dbx.DBTX (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the token row for accountID. The unique constraint on
// account_id backs the single-active-token invariant; a violation maps to
// common.ErrAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, accountID string, value string) error {
	query := `
		INSERT INTO tokens (account_id, token)
		VALUES ($1, $2)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, value); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// FindByAccount returns the stored token row for accountID.
// If not found, it returns common.ErrNotFound.
func (r *PostgresRepository) FindByAccount(ctx context.Context, accountID string) (*models.Token, error) {
	query := `
		SELECT id, account_id, token, created_at
		FROM tokens
		WHERE account_id = $1
	`
	token := &models.Token{}
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(
		&token.ID, &token.AccountID, &token.Value, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

// DeleteByAccount removes the token for accountID.
func (r *PostgresRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	query := `
		DELETE FROM tokens
		WHERE account_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
