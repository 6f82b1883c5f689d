// Package repomanager vends repository implementations bound to a DBTX and
// exposes the schema-migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"convo/internal/dbx"
	"convo/internal/server/repositories/conversations"
	"convo/internal/server/repositories/messages"
	"convo/internal/server/repositories/refreshtokens"
	"convo/internal/server/repositories/revokedtokens"
	"convo/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Conversations(db dbx.DBTX) conversations.Repository
	Messages(db dbx.DBTX) messages.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
