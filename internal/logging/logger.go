// Package logging defines the structured logging interface used across
// gliphic. The server logs through slog, the CLI through zap.
package logging

import "context"

// Logger is a context-aware, structured logger. The variadic args are
// alternating keys and values:
//
//	log.Info(ctx, "group created", "group", number, "user", userID)
//
// Keys and values never carry key material, passwords or plaintexts.
type Logger interface {
	// Debug logs protocol detail such as request ids and retry decisions.
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	// Warn logs conditions the caller recovered from, such as a partial sync.
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that adds args to every entry, for example
	// the module name.
	With(args ...any) Logger
}
