package repomanager

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gliphic/internal/dbx"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryManager_SharesRepositories(t *testing.T) {
	var m RepositoryManager = NewMemoryRepositoryManager()
	ctx := context.Background()

	require.NoError(t, m.RunMigrations(ctx))
	assert.Nil(t, m.Conn())

	u, err := m.Users(m.Conn()).Create(ctx, &models.User{UserName: "alice", ContactID: "QUJDREVGR0hJ"})
	require.NoError(t, err)

	err = m.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		got, err := m.Users(tx).GetByID(ctx, u.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, "alice", got.UserName)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, m.Close())
}

func TestMemoryManager_WithTxSerializes(t *testing.T) {
	m := NewMemoryRepositoryManager()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		inside  int
		maxSeen int
		mu      sync.Mutex
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
				mu.Lock()
				inside++
				maxSeen = max(maxSeen, inside)
				mu.Unlock()

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)

	err := m.WithTx(ctx, func(context.Context, dbx.DBTX) error { return errors.New("boom") })
	assert.EqualError(t, err, "boom")
}
