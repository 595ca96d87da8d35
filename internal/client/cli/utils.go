package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/token"
)

var errUsage = errors.New("usage")

// now is a test seam for time-outs.
var now = time.Now

// fail logs err and shows it to the user, returning it unchanged.
func (a *App) fail(ctx context.Context, op string, err error) error {
	a.logger.Error(ctx, op+" failed", "error", err)
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}

// usage prints the expected arguments of a command.
func (a *App) usage(text string) error {
	fmt.Fprintln(a.out, "Usage:", text)
	return errUsage
}

func parseNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a valid number", s)
	}
	return n, nil
}

// parseNumbers parses every argument with parseNumber.
func parseNumbers(args ...string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, s := range args {
		n, err := parseNumber(s)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// parseTimeOut turns user input into a message time-out. Empty input means
// no time-out, a duration such as 90m or 24h is counted from now and a
// plain integer is taken as Unix seconds.
func parseTimeOut(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return token.NoTimeOut, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%q is neither a duration nor a Unix time", s)
	}
	return now().Add(d).Unix(), nil
}

func formatTimeOut(timeOut int64) string {
	if timeOut == token.NoTimeOut {
		return "never"
	}
	return time.Unix(timeOut, 0).Local().Format(time.RFC1123)
}
