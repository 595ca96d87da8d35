// Package refreshtokens stores the single-use refresh tokens issued at login
// and on every token refresh.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

type Repository interface {
	// Create stores t and fills in its ID and CreatedAt. Token strings are
	// unique.
	Create(ctx context.Context, t *models.RefreshToken) error

	// Find returns the token with the given string or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a token. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes the tokens of userID that expired at or before
	// now and returns how many were removed.
	DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error)
}
