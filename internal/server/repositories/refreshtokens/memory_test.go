package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	expires := time.Now().Add(time.Hour)

	tok := &models.RefreshToken{UserID: "u1", Token: "tok", ExpiresAt: expires}
	require.NoError(t, r.Create(ctx, tok))
	assert.NotEmpty(t, tok.ID)
	assert.False(t, tok.CreatedAt.IsZero())

	err := r.Create(ctx, &models.RefreshToken{UserID: "u2", Token: "tok", ExpiresAt: expires})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := r.Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, *tok, *got)
	assert.False(t, got.Expired(time.Now()))

	require.NoError(t, r.Delete(ctx, "tok"))
	require.NoError(t, r.Delete(ctx, "tok"))

	_, err = r.Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_DeleteExpired(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()
	now := time.Now()

	for _, tok := range []*models.RefreshToken{
		{UserID: "u1", Token: "old", ExpiresAt: now.Add(-time.Minute)},
		{UserID: "u1", Token: "edge", ExpiresAt: now},
		{UserID: "u1", Token: "live", ExpiresAt: now.Add(time.Minute)},
		{UserID: "u2", Token: "other", ExpiresAt: now.Add(-time.Minute)},
	} {
		require.NoError(t, r.Create(ctx, tok))
	}

	n, err := r.DeleteExpired(ctx, "u1", now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	for token, want := range map[string]bool{"old": false, "edge": false, "live": true, "other": true} {
		_, err := r.Find(ctx, token)
		assert.Equal(t, want, err == nil, token)
	}
}

func TestRefreshToken_Expired(t *testing.T) {
	now := time.Now()
	assert.True(t, (&models.RefreshToken{ExpiresAt: now.Add(-time.Second)}).Expired(now))
	assert.True(t, (&models.RefreshToken{ExpiresAt: now}).Expired(now))
	assert.False(t, (&models.RefreshToken{ExpiresAt: now.Add(time.Second)}).Expired(now))
}
