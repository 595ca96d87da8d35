// Package shares stores sealed group keys waiting for their recipient.
package shares

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

type Repository interface {
	// Create stores s and fills in the generated ID.
	Create(ctx context.Context, s *models.Share) (*models.Share, error)
	Get(ctx context.Context, id string) (*models.Share, error)
	// ListForUser returns the shares addressed to userID, oldest first.
	ListForUser(ctx context.Context, userID string) ([]*models.Share, error)
	Delete(ctx context.Context, id string) error
}
