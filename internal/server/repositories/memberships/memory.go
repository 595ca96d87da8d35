package memberships

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
)

// MemoryRepository keeps memberships in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Membership
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, m *models.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.UserID == m.UserID && (row.GroupID == m.GroupID || row.Number == m.Number) {
			return fmt.Errorf("membership: %w", common.ErrorAlreadyExists)
		}
	}
	r.rows = append(r.rows, *m)
	return nil
}

func (r *MemoryRepository) NextNumber(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	next := int64(0)
	for _, row := range r.rows {
		if row.UserID == userID && row.Number >= next {
			next = row.Number + 1
		}
	}
	return next, nil
}

func (r *MemoryRepository) getOne(match func(*models.Membership) bool) (*models.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.rows {
		if match(&r.rows[i]) {
			m := r.rows[i]
			return &m, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetByNumber(ctx context.Context, userID string, number int64) (*models.Membership, error) {
	return r.getOne(func(m *models.Membership) bool { return m.UserID == userID && m.Number == number })
}

func (r *MemoryRepository) GetByGroup(ctx context.Context, userID, groupID string) (*models.Membership, error) {
	return r.getOne(func(m *models.Membership) bool { return m.UserID == userID && m.GroupID == groupID })
}

func (r *MemoryRepository) list(match func(*models.Membership) bool) []*models.Membership {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Membership
	for i := range r.rows {
		if match(&r.rows[i]) {
			m := r.rows[i]
			out = append(out, &m)
		}
	}
	slices.SortFunc(out, func(a, b *models.Membership) int { return cmp.Compare(a.Number, b.Number) })
	return out
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.Membership, error) {
	return r.list(func(m *models.Membership) bool { return m.UserID == userID }), nil
}

func (r *MemoryRepository) ListByGroup(ctx context.Context, groupID string) ([]*models.Membership, error) {
	return r.list(func(m *models.Membership) bool { return m.GroupID == groupID }), nil
}

func (r *MemoryRepository) UpdatePermissions(ctx context.Context, userID, groupID string, permissions int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows {
		if r.rows[i].UserID == userID && r.rows[i].GroupID == groupID {
			r.rows[i].Permissions = permissions
			return nil
		}
	}
	return common.ErrorNotFound
}
