package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/client/config"
	"github.com/dmitrijs2005/gliphic/internal/cryptox"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/logging"
	"github.com/dmitrijs2005/gliphic/internal/permissions"
	"github.com/dmitrijs2005/gliphic/internal/rpc"
	"github.com/dmitrijs2005/gliphic/internal/token"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	onlineUser string
	onlineKey  []byte
	onlineErr  error

	offlineUser string
	offlineKey  []byte
	offlineErr  error

	pingErr     error
	clearCalled bool
	clearErr    error
	closed      bool
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) OnlineLogin(_ context.Context, user string, _ []byte) ([]byte, error) {
	f.onlineUser = user
	return f.onlineKey, f.onlineErr
}
func (f *fakeAuth) OfflineLogin(_ context.Context, user string, _ []byte) ([]byte, error) {
	f.offlineUser = user
	return f.offlineKey, f.offlineErr
}
func (f *fakeAuth) ClearOfflineData(context.Context) error {
	f.clearCalled = true
	return f.clearErr
}
func (f *fakeAuth) Close(context.Context) error { f.closed = true; return nil }
func (f *fakeAuth) Ping(context.Context) error  { return f.pingErr }

type fakeDirs struct {
	dir       *directory.Directory
	syncCalls int
	syncErr   error
	added     string
	addErr    error
}

func (f *fakeDirs) Sync(context.Context) error       { f.syncCalls++; return f.syncErr }
func (f *fakeDirs) SyncGroups(context.Context) error { return nil }
func (f *fakeDirs) FetchGroup(_ context.Context, id string) (*directory.Group, error) {
	return f.dir.GroupByID(id)
}
func (f *fakeDirs) AddContact(_ context.Context, id string) (*directory.Contact, error) {
	f.added = id
	if f.addErr != nil {
		return nil, f.addErr
	}
	stored, err := f.dir.CreateAndStoreContacts([]directory.ContactRecord{{Number: 7, ID: id, Name: "bob", Type: int(directory.Known)}})
	if err != nil {
		return nil, err
	}
	return stored[0], nil
}
func (f *fakeDirs) Select(number int64) (*directory.Group, error) {
	g, err := f.dir.GroupByNumber(number)
	if err != nil {
		return nil, err
	}
	return f.dir.SelectGroup(g)
}
func (f *fakeDirs) Directory() *directory.Directory { return f.dir }

type fakeMessages struct {
	plain   string
	timeOut int64
	encOut  string
	encErr  error

	decIn  []string
	decOut []*token.Token
	decErr error
}

func (f *fakeMessages) Encrypt(_ context.Context, plain string, timeOut int64, _ []byte) (string, error) {
	f.plain, f.timeOut = plain, timeOut
	return f.encOut, f.encErr
}
func (f *fakeMessages) Decrypt(_ context.Context, text string, _ []byte) (*token.Token, error) {
	f.decIn = []string{text}
	if f.decErr != nil {
		return nil, f.decErr
	}
	return f.decOut[0], nil
}
func (f *fakeMessages) DecryptAll(_ context.Context, texts []string, _ []byte) ([]*token.Token, error) {
	f.decIn = texts
	return f.decOut, f.decErr
}

type fakeGroups struct {
	created    []string
	createOpen bool
	createOut  *directory.Group
	createErr  error

	shareArgs  []int64
	passphrase string
	shareErr   error

	shares    []rpc.Share
	acceptID  string
	acceptOut *directory.Group
	acceptErr error

	permState permissions.State
	permErr   error

	image     []byte
	imagePath string
	imageErr  error
}

func (f *fakeGroups) Create(_ context.Context, name, desc string, open bool, _ []byte) (*directory.Group, error) {
	f.created, f.createOpen = []string{name, desc}, open
	return f.createOut, f.createErr
}
func (f *fakeGroups) Share(_ context.Context, g, c int64, passphrase, _ []byte) (string, error) {
	f.shareArgs, f.passphrase = []int64{g, c}, string(passphrase)
	return "share-1", f.shareErr
}
func (f *fakeGroups) Shares(context.Context) ([]rpc.Share, error) { return f.shares, nil }
func (f *fakeGroups) Accept(_ context.Context, id string, passphrase, _ []byte) (*directory.Group, error) {
	f.acceptID, f.passphrase = id, string(passphrase)
	return f.acceptOut, f.acceptErr
}
func (f *fakeGroups) SetPermissions(_ context.Context, g, c int64, s permissions.State) error {
	f.shareArgs, f.permState = []int64{g, c}, s
	return f.permErr
}
func (f *fakeGroups) SetImage(_ context.Context, _ int64, image []byte) error {
	f.image = image
	return f.imageErr
}
func (f *fakeGroups) FetchImage(context.Context, int64) (string, error) {
	return f.imagePath, f.imageErr
}

// ---- helpers ----

type testApp struct {
	*App
	auth     *fakeAuth
	dirs     *fakeDirs
	messages *fakeMessages
	groups   *fakeGroups
	out      *bytes.Buffer
}

// newTestApp builds a logged in App over fakes, reading input from lines.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	logger, err := logging.NewJSONLogger(io.Discard, "error")
	require.NoError(t, err)

	ta := &testApp{
		auth:     &fakeAuth{},
		dirs:     &fakeDirs{dir: directory.New()},
		messages: &fakeMessages{},
		groups:   &fakeGroups{},
		out:      &bytes.Buffer{},
	}
	ta.App = &App{
		config:   &config.Config{OnlineCheckInterval: time.Hour},
		logger:   logger,
		auth:     ta.auth,
		dirs:     ta.dirs,
		messages: ta.messages,
		groups:   ta.groups,
		dataKey:  cryptox.NewKey(),
		userName: "alice",
		reader:   bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n")),
		out:      ta.out,
	}
	return ta
}

func stubSecret(t *testing.T, secret string) {
	t.Helper()
	orig := getSecret
	getSecret = func(io.Writer, string) ([]byte, error) { return []byte(secret), nil }
	t.Cleanup(func() { getSecret = orig })
}

func testGroup(t *testing.T, number int64, name string) *directory.Group {
	t.Helper()
	g, err := directory.NewGroup(number, "ABCDEFGHIJK"+string(rune('a'+number)), name, name+" description",
		nil, permissions.ActiveOwner, false)
	require.NoError(t, err)
	return g
}

// testMessage composes a token on g with a fresh key, as Decrypt would
// return it.
func testMessage(t *testing.T, g *directory.Group, plain string, timeOut int64) *token.Token {
	t.Helper()
	var tok *token.Token
	err := g.UseKey(cryptox.NewKey(), func(g *directory.Group) error {
		var err error
		tok, err = token.Compose(plain, timeOut, g, time.Now())
		return err
	})
	require.NoError(t, err)
	return tok
}
