package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/server/config"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		MessageSecret:                "m",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		S3Region:                     "us-east-1",
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3BaseEndpoint:               "http://127.0.0.1:9000",
		S3Bucket:                     "gliphic",
	}
}

// env wires every service to one in-memory store.
type env struct {
	rm       *repomanager.MemoryRepositoryManager
	users    *UserService
	contacts *ContactService
	groups   *GroupService
	messages *MessageService
	images   *ImageService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	cfg := testConfig()
	return &env{
		rm:       rm,
		users:    NewUserService(rm, cfg),
		contacts: NewContactService(rm),
		groups:   NewGroupService(rm),
		messages: NewMessageService(rm, cfg),
		images:   NewImageService(rm, cfg),
	}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), name, []byte("salt"), []byte("verifier"),
		[]byte("encrypted default key"), cryptox.NewNonce())
	require.NoError(t, err)
	return u
}

func (e *env) newGroup(t *testing.T, owner *models.User, name string) int64 {
	t.Helper()
	rec, err := e.groups.CreateGroup(context.Background(), owner.ID, NewGroupInput{
		Name:              name,
		Description:       name + " description",
		EncryptedGroupKey: []byte("encrypted " + name + " key"),
		GroupKeyIV:        cryptox.NewNonce(),
	})
	require.NoError(t, err)
	return rec.Number
}

// join shares owner's group with member and accepts the share. It returns
// the member's number for the group.
func (e *env) join(t *testing.T, owner *models.User, groupNumber int64, member *models.User) int64 {
	t.Helper()
	ctx := context.Background()
	shareID, err := e.groups.ShareGroup(ctx, owner.ID, groupNumber, member.ContactNumber, []byte("sealed"), cryptox.NewNonce())
	require.NoError(t, err)
	rec, err := e.groups.AcceptShare(ctx, member.ID, shareID, []byte("member key"), cryptox.NewNonce())
	require.NoError(t, err)
	return rec.Number
}
