package repomanager

import (
	"context"
	"database/sql"

	"github.com/iKaueMatos/twitter-microservices/internal/dbx"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/accounts"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/activationcodes"
	"github.com/iKaueMatos/twitter-microservices/internal/server/repositories/tokens"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run the same repository code inside or outside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	ActivationCodes(db dbx.DBTX) activationcodes.Repository
	Tokens(db dbx.DBTX) tokens.Repository
}
