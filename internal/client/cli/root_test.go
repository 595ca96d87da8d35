package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	a := &App{}
	assert.Equal(t, "", a.getStatus())

	a.userName = "alice"
	assert.Equal(t, "(alice )", a.getStatus())

	a.Mode = ModeOffline
	assert.Equal(t, "(alice offline)", a.getStatus())
}

func TestRoot_RunsUntilExit(t *testing.T) {
	capturePrintln(t)
	ta := newTestApp(t, "logout", "exit")

	ta.Root(context.Background())
	assert.True(t, ta.auth.clearCalled)
	assert.Contains(t, ta.out.String(), "Welcome to gliphic")
}

func TestRun_Closes(t *testing.T) {
	capturePrintln(t)
	ta := newTestApp(t, "exit")

	require.NoError(t, ta.Run(context.Background()))
	assert.True(t, ta.auth.closed)
}

func TestStartOnlineStatusWatcher(t *testing.T) {
	ta := newTestApp(t)
	ta.setMode(context.Background(), ModeOffline)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return ta.mode() == ModeOnline }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestStartOnlineStatusWatcher_GoesOffline(t *testing.T) {
	ta := newTestApp(t)
	ta.setMode(context.Background(), ModeOnline)
	ta.auth.pingErr = assert.AnError

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ta.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return ta.mode() == ModeOffline }, time.Second, 5*time.Millisecond)
}
