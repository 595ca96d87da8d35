package groups

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps groups in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.Group
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.Group)}
}

func (r *MemoryRepository) Create(ctx context.Context, g *models.Group) (*models.Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.byID {
		if bytes.Equal(other.RawID, g.RawID) {
			return nil, fmt.Errorf("group id: %w", common.ErrorAlreadyExists)
		}
	}

	g.ID = uuid.NewString()
	g.CreatedAt = time.Now()
	stored := *g
	stored.RawID = slices.Clone(g.RawID)
	r.byID[g.ID] = &stored
	return g, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	found := *g
	return &found, nil
}

func (r *MemoryRepository) SetImageKey(ctx context.Context, id, imageKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	g.ImageKey = imageKey
	return nil
}
