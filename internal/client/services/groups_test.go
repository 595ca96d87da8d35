package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups_Create(t *testing.T) {
	ts := startServer(t)
	u := ts.newUser(t, "alice")
	ctx := context.Background()

	g, err := u.groups.Create(ctx, "Friends", "Weekend plans", true, u.dataKey)
	require.NoError(t, err)
	assert.Equal(t, "Friends", g.Name())
	assert.Equal(t, permissions.ActiveOwner, g.Permissions())
	assert.True(t, g.IsOpen())
	assert.False(t, g.IsDefault())

	stored, err := u.dirs.Directory().GroupByNumber(g.Number())
	require.NoError(t, err)
	assert.Same(t, g, stored)

	_, err = u.groups.Create(ctx, "Others", "Weekend plans", false, u.dataKey)
	assert.ErrorIs(t, err, directory.ErrDuplicateDescription)

	_, err = u.groups.Create(ctx, "x", "Short name", false, u.dataKey)
	assert.ErrorIs(t, err, validation.ErrLength)
}

func TestGroups_ShareAndAccept(t *testing.T) {
	ts := startServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	ctx := context.Background()

	g, err := alice.groups.Create(ctx, "Friends", "Weekend plans", false, alice.dataKey)
	require.NoError(t, err)
	target, err := alice.dirs.AddContact(ctx, bob.contact(t).ID())
	require.NoError(t, err)

	shareID, err := alice.groups.Share(ctx, g.Number(), target.Number(), []byte("open sesame"), alice.dataKey)
	require.NoError(t, err)

	shares, err := bob.groups.Shares(ctx)
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, shareID, shares[0].ID)
	assert.Equal(t, "Friends", shares[0].GroupName)
	assert.Equal(t, "alice", shares[0].FromName)

	_, err = bob.groups.Accept(ctx, shareID, []byte("wrong"), bob.dataKey)
	assert.ErrorIs(t, err, ErrWrongPassphrase)

	_, err = bob.groups.Accept(ctx, "missing", []byte("open sesame"), bob.dataKey)
	assert.ErrorIs(t, err, ErrShareNotFound)

	joined, err := bob.groups.Accept(ctx, shareID, []byte("open sesame"), bob.dataKey)
	require.NoError(t, err)
	assert.Equal(t, g.ID(), joined.ID())
	assert.Equal(t, permissions.ActiveMember, joined.Permissions())

	shares, err = bob.groups.Shares(ctx)
	require.NoError(t, err)
	assert.Empty(t, shares)

	extended, err := bob.dirs.Directory().ExtendedContacts()
	require.NoError(t, err)
	require.Len(t, extended, 1)
	assert.Equal(t, "alice", extended[0].Name())

	_, err = alice.groups.Share(ctx, g.Number(), target.Number(), []byte("again"), alice.dataKey)
	assert.ErrorIs(t, err, client.ErrRejected)
}

func TestGroups_ShareRules(t *testing.T) {
	ts := startServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	carol := ts.newUser(t, "carol")
	ctx := context.Background()

	g, err := alice.groups.Create(ctx, "Friends", "Weekend plans", false, alice.dataKey)
	require.NoError(t, err)

	_, err = alice.groups.Share(ctx, g.Number(), 1, nil, alice.dataKey)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	_, err = alice.groups.Share(ctx, g.Number(), bob.contact(t).Number(), []byte("pw"), alice.dataKey)
	assert.ErrorIs(t, err, directory.ErrContactNotFound)

	bobGroup := alice.shareWith(t, bob, g.Number())

	// Plain members cannot pass the group on.
	target, err := bob.dirs.AddContact(ctx, carol.contact(t).ID())
	require.NoError(t, err)
	_, err = bob.groups.Share(ctx, bobGroup.Number(), target.Number(), []byte("pw"), bob.dataKey)
	assert.ErrorIs(t, err, client.ErrForbidden)
}

func TestGroups_SetPermissions(t *testing.T) {
	ts := startServer(t)
	alice := ts.newUser(t, "alice")
	bob := ts.newUser(t, "bob")
	ctx := context.Background()

	g, err := alice.groups.Create(ctx, "Friends", "Weekend plans", false, alice.dataKey)
	require.NoError(t, err)
	bobGroup := alice.shareWith(t, bob, g.Number())

	require.NoError(t, alice.groups.SetPermissions(ctx, g.Number(), bob.contact(t).Number(), permissions.ActiveDistributor))
	require.NoError(t, bob.dirs.Sync(ctx))
	assert.Equal(t, permissions.ActiveDistributor, bobGroup.Permissions())

	err = bob.groups.SetPermissions(ctx, bobGroup.Number(), alice.contact(t).Number(), permissions.ActiveDenied)
	assert.ErrorIs(t, err, client.ErrForbidden)
}

func TestGroups_Images(t *testing.T) {
	ts := startServer(t)
	u := ts.newUser(t, "alice")
	ctx := context.Background()

	g, err := u.groups.Create(ctx, "Friends", "Weekend plans", false, u.dataKey)
	require.NoError(t, err)

	_, err = u.groups.FetchImage(ctx, g.Number())
	assert.ErrorIs(t, err, ErrNoImage)

	err = u.groups.SetImage(ctx, g.Number(), nil)
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)

	image := []byte("\x89PNG\r\n\x1a\nfake image body")
	require.NoError(t, u.groups.SetImage(ctx, g.Number(), image))
	assert.True(t, strings.HasPrefix(g.ImageKey(), "images/"))
	assert.Len(t, ts.s3.objects, 1)

	path, err := u.groups.FetchImage(ctx, g.Number())
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(g.ImageKey()), strings.TrimPrefix(filepath.Base(path), fmt.Sprintf("group-%d-", g.Number())))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, image, got)
}
