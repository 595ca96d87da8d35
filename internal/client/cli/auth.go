package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gliphic/internal/client/client"
	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/directory"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// Register prompts the user for a user name and password and creates the
// account together with its default group.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return a.fail(ctx, "register", err)
	}

	fmt.Fprintln(a.out, "Success! You can log in now.")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
//
// The method first attempts an online login. If the server is unavailable
// (errors.Is(err, client.ErrUnavailable)), it falls back to offline login.
// On success it sets the data key and updates the connectivity Mode:
//   - ModeOnline if online login succeeds,
//   - ModeOffline if offline login succeeds,
//   - ModeDisabled if both fail.
//
// After an online login the directory is synced; sync problems are reported
// but do not undo the login.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getSecret(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	dataKey, err := a.auth.OnlineLogin(ctx, userName, password)
	switch {
	case err == nil:
		a.logger.Info(ctx, "login successful", "user", userName)
		a.setMode(ctx, ModeOnline)
	case errors.Is(err, client.ErrUnavailable):
		a.logger.Warn(ctx, "server unavailable, trying offline login")
		dataKey, err = a.auth.OfflineLogin(ctx, userName, password)
		if err != nil {
			a.setMode(ctx, ModeDisabled)
			return a.fail(ctx, "offline login", err)
		}
		a.logger.Info(ctx, "offline login successful", "user", userName)
		a.setMode(ctx, ModeOffline)
	default:
		return a.fail(ctx, "login", err)
	}

	a.dataKey = dataKey
	a.userName = userName
	fmt.Fprintf(a.out, "Logged in as %s (%s).\n", userName, a.mode())

	if a.mode() == ModeOnline {
		_ = a.Sync(ctx)
	}
	return nil
}

// Logout forgets the session: the directory and the data key are wiped and
// the locally cached offline data is removed.
func (a *App) Logout(ctx context.Context) error {
	a.dirs.Directory().Clear()
	common.WipeByteArray(a.dataKey)
	a.dataKey = nil
	a.userName = ""

	if err := a.auth.ClearOfflineData(ctx); err != nil {
		return a.fail(ctx, "logout", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Sync reloads contacts and groups. Records the directory rejects are
// reported as a warning and the rest are kept.
func (a *App) Sync(ctx context.Context) error {
	err := a.dirs.Sync(ctx)
	var bulk *directory.BulkError
	if errors.As(err, &bulk) {
		a.logger.Warn(ctx, "sync stored partially", "error", err)
		fmt.Fprintf(a.out, "warning: %v\n", err)
		return nil
	}
	if err != nil {
		return a.fail(ctx, "sync", err)
	}
	fmt.Fprintln(a.out, "Synced.")
	return nil
}
