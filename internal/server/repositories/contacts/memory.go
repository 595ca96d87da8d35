package contacts

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository keeps known contacts in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	known map[string][]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{known: make(map[string][]string)}
}

func (r *MemoryRepository) Add(ctx context.Context, ownerID, contactUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !slices.Contains(r.known[ownerID], contactUserID) {
		r.known[ownerID] = append(r.known[ownerID], contactUserID)
	}
	return nil
}

func (r *MemoryRepository) ListKnown(ctx context.Context, ownerID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.known[ownerID]), nil
}
