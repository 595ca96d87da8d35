package services

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/logging"
	sc "github.com/dmitrijs2005/gliphic/internal/server/config"
	servergrpc "github.com/dmitrijs2005/gliphic/internal/server/grpc"
	"github.com/dmitrijs2005/gliphic/internal/server/repositories/repomanager"
	ss "github.com/dmitrijs2005/gliphic/internal/server/services"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

// fakeS3 stores objects by URL path, ignoring presign query parameters.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch r.Method {
	case http.MethodPut:
		b, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = b
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		b, ok := f.objects[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(b)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type testServer struct {
	lis *bufconn.Listener
	s3  *fakeS3
}

// startServer runs the reference server on an in-memory store behind a
// bufconn listener, with a fake S3 endpoint for images.
func startServer(t *testing.T) *testServer {
	t.Helper()

	s3 := &fakeS3{objects: map[string][]byte{}}
	s3srv := httptest.NewServer(s3)
	t.Cleanup(s3srv.Close)

	cfg := &sc.Config{
		SecretKey:                    "k",
		MessageSecret:                "m",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: time.Hour,
		S3RootUser:                   "minioadmin",
		S3RootPassword:               "minioadmin",
		S3Bucket:                     "gliphic",
		S3Region:                     "us-east-1",
		S3BaseEndpoint:               s3srv.URL,
	}
	rm := repomanager.NewMemoryRepositoryManager()
	logger, err := logging.NewJSONLogger(io.Discard, "error")
	require.NoError(t, err)

	srv := servergrpc.NewGRPCServer("bufnet", logger, servergrpc.Services{
		Users:    ss.NewUserService(rm, cfg),
		Contacts: ss.NewContactService(rm),
		Groups:   ss.NewGroupService(rm),
		Messages: ss.NewMessageService(rm, cfg),
		Images:   ss.NewImageService(rm, cfg),
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
	return &testServer{lis: lis, s3: s3}
}

// user is one CLI session against the test server.
type user struct {
	name     string
	password []byte
	client   *client.GRPCClient
	auth     AuthService
	dirs     DirectoryService
	messages MessageService
	groups   GroupService
	dataKey  []byte
}

func (ts *testServer) newClient(t *testing.T) *client.GRPCClient {
	t.Helper()
	c, err := client.NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return ts.lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// newUser registers name, logs in online and syncs the directory.
func (ts *testServer) newUser(t *testing.T, name string) *user {
	t.Helper()
	ctx := context.Background()

	c := ts.newClient(t)
	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	dirs := NewDirectoryService(c, directory.New())
	u := &user{
		name:     name,
		password: []byte(name + " password"),
		client:   c,
		auth:     NewAuthService(c, db),
		dirs:     dirs,
		messages: NewMessageService(c, dirs),
		groups:   NewGroupService(c, dirs, filepath.Join(t.TempDir(), "images")),
	}

	require.NoError(t, u.auth.Register(ctx, name, u.password))
	u.dataKey, err = u.auth.OnlineLogin(ctx, name, u.password)
	require.NoError(t, err)
	require.NoError(t, u.dirs.Sync(ctx))
	return u
}

func (u *user) contact(t *testing.T) *directory.Contact {
	t.Helper()
	c, err := u.dirs.Directory().CurrentContact()
	require.NoError(t, err)
	return c
}

// shareWith makes other a known contact of u, shares group number with
// them and lets them accept. It returns other's copy of the group.
func (u *user) shareWith(t *testing.T, other *user, number int64) *directory.Group {
	t.Helper()
	ctx := context.Background()

	target, err := u.dirs.AddContact(ctx, other.contact(t).ID())
	require.NoError(t, err)

	shareID, err := u.groups.Share(ctx, number, target.Number(), []byte("open sesame"), u.dataKey)
	require.NoError(t, err)

	g, err := other.groups.Accept(ctx, shareID, []byte("open sesame"), other.dataKey)
	require.NoError(t, err)
	return g
}
