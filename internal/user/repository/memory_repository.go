package repository

import (
	"context"
	"sync"

	"github.com/tair/retail-dashboard/internal/user/domain"
)

// MemoryUserRepository keeps credentials in process memory
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[string]domain.User
	nextID uint
}

// NewMemoryUserRepository creates an empty in-memory credential store
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]domain.User)}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return domain.DuplicateError(user.Username)
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Username] = *user
	return nil
}

func (r *MemoryUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.NotFoundError(username)
	}
	return &u, nil
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}
