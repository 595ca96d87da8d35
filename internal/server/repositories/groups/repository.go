// Package groups stores the shared part of every group.
package groups

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

type Repository interface {
	// Create stores g and fills in the generated ID.
	Create(ctx context.Context, g *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, id string) (*models.Group, error)
	SetImageKey(ctx context.Context, id, imageKey string) error
}
