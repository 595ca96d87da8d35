package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/server/config"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gliphic/internal/server/services"
	"github.com/dmitrijs2005/gliphic/internal/token"
	"github.com/dmitrijs2005/gliphic/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// ---- fakes ----

type fakeUser struct {
	refreshResp *services.TokenPair
	refreshErr  error

	regResp *models.User
	regErr  error

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error
}

func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}
func (f *fakeUser) Register(ctx context.Context, username string, salt, verifier, key, iv []byte) (*models.User, error) {
	return f.regResp, f.regErr
}
func (f *fakeUser) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}
func (f *fakeUser) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

// ---- helpers ----

func newServer(u userSvc) *GRPCServer {
	return &GRPCServer{
		address:   "127.0.0.1:0",
		users:     u,
		logger:    nopLogger{},
		jwtSecret: []byte("k"),
	}
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	s := newServer(&fakeUser{})
	resp, err := s.Ping(context.Background(), &rpc.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", resp.Status)
}

func TestRefreshToken_OK(t *testing.T) {
	u := &fakeUser{
		refreshResp: &services.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}
	s := newServer(u)
	resp, err := s.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: "r0"})
	require.NoError(t, err)
	assert.Equal(t, "a", resp.AccessToken)
	assert.Equal(t, "r", resp.RefreshToken)
}

func TestUserHandlers_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	s := newServer(&fakeUser{refreshErr: common.ErrRefreshTokenExpired})
	_, err := s.RefreshToken(ctx, &rpc.RefreshTokenRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	s = newServer(&fakeUser{loginErr: common.ErrorUnauthorized})
	_, err = s.Login(ctx, &rpc.LoginRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	s = newServer(&fakeUser{saltErr: common.ErrorInternal})
	_, err = s.GetSalt(ctx, &rpc.GetSaltRequest{})
	assert.Equal(t, codes.Internal, status.Code(err))

	s = newServer(&fakeUser{regErr: fmt.Errorf("error creating user: %w", common.ErrorAlreadyExists)})
	_, err = s.RegisterUser(ctx, &rpc.RegisterUserRequest{})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	s = newServer(&fakeUser{regResp: &models.User{ID: "42"}})
	resp, err := s.RegisterUser(ctx, &rpc.RegisterUserRequest{})
	require.NoError(t, err)
	assert.Equal(t, "42", resp.UserID)
}

func TestToStatus(t *testing.T) {
	s := newServer(nil)
	ctx := context.Background()
	fieldErr := validation.CheckName(validation.Group, "")
	require.Error(t, fieldErr)

	cases := []struct {
		err  error
		want codes.Code
	}{
		{common.ErrInvalidToken, codes.Unauthenticated},
		{common.ErrTokenExpired, codes.Unauthenticated},
		{fmt.Errorf("wrapped: %w", fieldErr), codes.InvalidArgument},
		{common.ErrorInvalidArgument, codes.InvalidArgument},
		{common.ErrorForbidden, codes.PermissionDenied},
		{common.ErrorAlreadyExists, codes.AlreadyExists},
		{common.ErrorNotFound, codes.NotFound},
		{errors.New("boom"), codes.Internal},
		{status.Error(codes.Aborted, "as is"), codes.Aborted},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, status.Code(s.toStatus(ctx, "m", tc.err)), tc.err.Error())
	}

	st := status.Convert(s.toStatus(ctx, "m", fieldErr))
	assert.Equal(t, fieldErr.Error(), st.Message())

	mapped := s.toStatus(ctx, "m", fmt.Errorf("x: %w", &services.UnknownGroupError{Number: 3}))
	n, ok := rpc.UnknownGroupNumber(mapped)
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)

	assert.Equal(t, "internal error", status.Convert(s.toStatus(ctx, "m", errors.New("secret detail"))).Message())
}

// ---- end to end over bufconn ----

type e2e struct {
	client rpc.GliphicClient
}

func startE2E(t *testing.T) *e2e {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	cfg := &config.Config{
		SecretKey:                    "k",
		MessageSecret:                "m",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
		S3Bucket:                     "gliphic",
	}
	srv := NewGRPCServer("bufnet", nopLogger{}, Services{
		Users:    services.NewUserService(rm, cfg),
		Contacts: services.NewContactService(rm),
		Groups:   services.NewGroupService(rm),
		Messages: services.NewMessageService(rm, cfg),
		Images:   services.NewImageService(rm, cfg),
	}, cfg.SecretKey)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = srv.Serve(ctx, lis)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &e2e{client: rpc.NewGliphicClient(conn)}
}

// login registers name and returns a context carrying its access token.
func (e *e2e) login(t *testing.T, name string) context.Context {
	t.Helper()
	ctx := context.Background()
	_, err := e.client.RegisterUser(ctx, &rpc.RegisterUserRequest{
		Username:          name,
		Salt:              []byte("salt"),
		Verifier:          []byte("verifier-" + name),
		DefaultGroupKey:   []byte("dk"),
		DefaultGroupKeyIV: cryptox.NewNonce(),
	})
	require.NoError(t, err)

	var header metadata.MD
	tokens, err := e.client.Login(ctx, &rpc.LoginRequest{Username: name, Verifier: []byte("verifier-" + name)}, grpc.Header(&header))
	require.NoError(t, err)
	assert.NotEmpty(t, header.Get(common.RequestIDHeaderName))
	return metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, tokens.AccessToken)
}

func TestE2E_GroupLifecycle(t *testing.T) {
	e := startE2E(t)
	alice := e.login(t, "alice")
	bob := e.login(t, "bob")

	_, err := e.client.ListGroups(context.Background(), &rpc.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	contacts, err := e.client.ListContacts(bob, &rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, contacts.Contacts, 1)
	bobNumber := contacts.Contacts[0].Number

	created, err := e.client.CreateGroup(alice, &rpc.CreateGroupRequest{
		Name: "Family", Description: "Family chat",
		EncryptedGroupKey: []byte("ek"), GroupKeyIV: cryptox.NewNonce(),
	})
	require.NoError(t, err)
	g := created.Group.Number

	_, err = e.client.CreateGroup(alice, &rpc.CreateGroupRequest{
		Name: "x", Description: "d", EncryptedGroupKey: []byte("ek"), GroupKeyIV: cryptox.NewNonce(),
	})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	share, err := e.client.ShareGroup(alice, &rpc.ShareGroupRequest{
		GroupNumber: g, ContactNumber: bobNumber, SealedKey: []byte("sealed"), SealNonce: cryptox.NewNonce(),
	})
	require.NoError(t, err)

	shares, err := e.client.ListShares(bob, &rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, shares.Shares, 1)
	assert.Equal(t, share.ShareID, shares.Shares[0].ID)
	assert.Equal(t, "alice", shares.Shares[0].FromName)

	accepted, err := e.client.AcceptShare(bob, &rpc.AcceptShareRequest{
		ShareID: share.ShareID, EncryptedGroupKey: []byte("bob-ek"), GroupKeyIV: cryptox.NewNonce(),
	})
	require.NoError(t, err)
	bobGroup := accepted.Group.Number

	iv := cryptox.NewNonce()
	wrapped, err := e.client.WrapMessage(alice, &rpc.WrapMessageRequest{GroupNumber: g, IV: iv, RawCipherText: []byte("ct")})
	require.NoError(t, err)

	revealed, err := e.client.RevealMessages(bob, &rpc.RevealMessagesRequest{Items: []rpc.RevealItem{
		{GroupNumber: bobGroup, IV: iv, Blob: wrapped.Blob},
	}})
	require.NoError(t, err)
	require.Len(t, revealed.Results, 1)
	assert.Equal(t, int(token.StatusSuccess), revealed.Results[0].Status)
	assert.Equal(t, []byte("ct"), revealed.Results[0].RawCipherText)
	assert.Equal(t, []byte("bob-ek"), revealed.Results[0].EncryptedGroupKey)

	_, err = e.client.SetMemberPermissions(alice, &rpc.SetMemberPermissionsRequest{
		GroupNumber: g, ContactNumber: bobNumber, Permissions: permissions.ActiveDenied.Code(),
	})
	require.NoError(t, err)

	revealed, err = e.client.RevealMessages(bob, &rpc.RevealMessagesRequest{Items: []rpc.RevealItem{
		{GroupNumber: bobGroup, IV: iv, Blob: wrapped.Blob},
	}})
	require.NoError(t, err)
	assert.Equal(t, int(token.StatusDenied), revealed.Results[0].Status)
	assert.Empty(t, revealed.Results[0].RawCipherText)

	_, err = e.client.WrapMessage(bob, &rpc.WrapMessageRequest{GroupNumber: bobGroup, IV: iv, RawCipherText: []byte("ct")})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = e.client.GetGroupKey(bob, &rpc.GroupNumberRequest{GroupNumber: 9})
	n, ok := rpc.UnknownGroupNumber(err)
	assert.True(t, ok)
	assert.Equal(t, int64(9), n)
}
