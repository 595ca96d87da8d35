// Package memberships stores each user's view of the groups they belong to:
// their group number, permissions and encrypted copy of the group key.
package memberships

import (
	"context"

	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, m *models.Membership) error
	// NextNumber returns the group number the user's next membership gets.
	NextNumber(ctx context.Context, userID string) (int64, error)
	GetByNumber(ctx context.Context, userID string, number int64) (*models.Membership, error)
	GetByGroup(ctx context.Context, userID, groupID string) (*models.Membership, error)
	// ListByUser returns the user's memberships ordered by group number.
	ListByUser(ctx context.Context, userID string) ([]*models.Membership, error)
	ListByGroup(ctx context.Context, groupID string) ([]*models.Membership, error)
	UpdatePermissions(ctx context.Context, userID, groupID string, permissions int) error
}
