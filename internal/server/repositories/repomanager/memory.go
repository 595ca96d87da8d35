package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/groups"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/memberships"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/shares"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. The DBTX
// handles are ignored. Transactions are serialized against each other but
// are not rolled back on error.
type MemoryRepositoryManager struct {
	txMu sync.Mutex

	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	contacts      *contacts.MemoryRepository
	groups        *groups.MemoryRepository
	memberships   *memberships.MemoryRepository
	shares        *shares.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		contacts:      contacts.NewMemoryRepository(),
		groups:        groups.NewMemoryRepository(),
		memberships:   memberships.NewMemoryRepository(),
		shares:        shares.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Conn() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *MemoryRepositoryManager) Close() error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *MemoryRepositoryManager) Contacts(dbx.DBTX) contacts.Repository { return m.contacts }

func (m *MemoryRepositoryManager) Groups(dbx.DBTX) groups.Repository { return m.groups }

func (m *MemoryRepositoryManager) Memberships(dbx.DBTX) memberships.Repository {
	return m.memberships
}

func (m *MemoryRepositoryManager) Shares(dbx.DBTX) shares.Repository { return m.shares }
