package cli

import (
	"bufio"
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if m := a.mode(); m != "" {
		s = s + string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, starts the connectivity watcher and runs the REPL
// on the app's input until the user exits.
func (a *App) Root(ctx context.Context) {
	a.logger.Info(ctx, "cli started", "server", a.config.ServerEndpointAddr)
	fmt.Fprintln(a.out, "Welcome to gliphic (type 'help' for commands)")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(&lineReader{r: a.reader}))
}
