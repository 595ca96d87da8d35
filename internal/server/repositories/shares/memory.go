package shares

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps shares in process memory, in creation order.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Share
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, s *models.Share) (*models.Share, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
	r.rows = append(r.rows, *s)
	return s, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.rows {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListForUser(ctx context.Context, userID string) ([]*models.Share, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Share
	for _, s := range r.rows {
		if s.ToUserID == userID {
			out = append(out, &s)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = slices.DeleteFunc(r.rows, func(s models.Share) bool { return s.ID == id })
	return nil
}
