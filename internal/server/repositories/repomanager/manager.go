// Package repomanager vends the server repositories for one storage backend
// and runs work inside that backend's transactions.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/groups"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/shares"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	// Conn is the handle to pass to the factories outside a transaction.
	Conn() dbx.DBTX
	// WithTx runs fn inside a transaction; pass tx to the factories.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Close() error

	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Contacts(db dbx.DBTX) contacts.Repository
	Groups(db dbx.DBTX) groups.Repository
	Memberships(db dbx.DBTX) memberships.Repository
	Shares(db dbx.DBTX) shares.Repository
}
