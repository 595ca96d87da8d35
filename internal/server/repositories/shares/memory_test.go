package shares

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	s1, err := r.Create(ctx, &models.Share{GroupID: "g1", FromUserID: "u1", ToUserID: "u2"})
	require.NoError(t, err)
	_, err = r.Create(ctx, &models.Share{GroupID: "g2", FromUserID: "u1", ToUserID: "u3"})
	require.NoError(t, err)
	s3, err := r.Create(ctx, &models.Share{GroupID: "g3", FromUserID: "u3", ToUserID: "u2"})
	require.NoError(t, err)

	list, err := r.ListForUser(ctx, "u2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, s1.ID, list[0].ID)
	assert.Equal(t, s3.ID, list[1].ID)

	got, err := r.Get(ctx, s3.ID)
	require.NoError(t, err)
	assert.Equal(t, "g3", got.GroupID)

	require.NoError(t, r.Delete(ctx, s1.ID))
	_, err = r.Get(ctx, s1.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	list, _ = r.ListForUser(ctx, "u2")
	assert.Len(t, list, 1)
}
