package contacts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepository()

	require.NoError(t, r.Add(ctx, "u1", "u2"))
	require.NoError(t, r.Add(ctx, "u1", "u3"))
	require.NoError(t, r.Add(ctx, "u1", "u2"))

	ids, err := r.ListKnown(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u3"}, ids)

	ids, err = r.ListKnown(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
