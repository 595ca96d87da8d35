package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/client/config"
	"github.com/dmitrijs2005/gliphic/internal/client/services"
	"github.com/dmitrijs2005/gliphic/internal/directory"
	"github.com/dmitrijs2005/gliphic/internal/logging"
)

type Mode string

const (
	ModeOffline  Mode = "offline"
	ModeOnline   Mode = "online"
	ModeDisabled Mode = "disabled"
)

// App is one interactive session. The data encryption key is held in
// memory from login to logout only.
type App struct {
	config   *config.Config
	logger   logging.Logger
	auth     services.AuthService
	dirs     services.DirectoryService
	messages services.MessageService
	groups   services.GroupService

	dataKey  []byte
	userName string

	modeMu sync.RWMutex
	Mode   Mode

	reader *bufio.Reader
	out    io.Writer
	closer func() error
}

// NewApp opens the local database and the server connection and builds the
// services on top of them.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	dirs := services.NewDirectoryService(apiClient, directory.New())

	return &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		auth:     services.NewAuthService(apiClient, db),
		dirs:     dirs,
		messages: services.NewMessageService(apiClient, dirs),
		groups:   services.NewGroupService(apiClient, dirs, c.ImageDir),
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		closer:   db.Close,
	}, nil
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.Mode
}

// Run serves the REPL until the user exits, then releases the connection
// and the local database.
func (a *App) Run(ctx context.Context) error {
	a.Root(ctx)
	return a.Close(ctx)
}

func (a *App) Close(ctx context.Context) error {
	err := a.auth.Close(ctx)
	if a.closer != nil {
		err = errors.Join(err, a.closer())
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.dataKey != nil
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode between online and offline until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.auth.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.mode() == ModeOnline {
					a.setMode(ctx, ModeOffline)
				}
			} else if a.mode() != ModeOnline {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
