// Package contacts stores which users each user has added as a known
// contact.
package contacts

import "context"

type Repository interface {
	// Add records contactUserID as a known contact of ownerID. Adding an
	// existing pair is not an error.
	Add(ctx context.Context, ownerID, contactUserID string) error
	// ListKnown returns the user ids ownerID has added.
	ListKnown(ctx context.Context, ownerID string) ([]string, error)
}
