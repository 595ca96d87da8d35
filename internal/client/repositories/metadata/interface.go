// Package metadata stores small key/value records in the CLI's local
// database, most notably the profile used for offline login.
package metadata

import (
	"context"
)

// Repository is a key/value store. Lookups of missing keys fail with an
// error matching common.ErrorNotFound.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns the values of every key that exists. It fails only on
	// storage errors; callers check for missing keys themselves.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany upserts all values in one statement.
	SetMany(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
