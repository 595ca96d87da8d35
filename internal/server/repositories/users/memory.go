package users

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gliphic/internal/common"
	"github.com/dmitrijs2005/gliphic/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.User
	nextNumber int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*models.User), nextNumber: 1}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.UserName == user.UserName || u.ContactID == user.ContactID {
			return nil, fmt.Errorf("user %s: %w", user.UserName, common.ErrorAlreadyExists)
		}
	}

	user.ID = uuid.NewString()
	user.ContactNumber = r.nextNumber
	user.CreatedAt = time.Now()
	r.nextNumber++

	stored := *user
	r.byID[user.ID] = &stored
	return user, nil
}

func (r *MemoryRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.UserName == login })
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == id })
}

func (r *MemoryRepository) GetByContactID(ctx context.Context, contactID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ContactID == contactID })
}

func (r *MemoryRepository) GetByContactNumber(ctx context.Context, number int64) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ContactNumber == number })
}
