package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/tixgo/internal/shared"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory. Everything is lost
// on restart, which is what the development portal wants.
type MemoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: make(map[string]User)}
}

func (r *MemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.UserName]; ok {
		return nil, shared.ErrorAlreadyExists
	}

	u := *user
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	r.users[u.UserName] = u

	return &u, nil
}

func (r *MemoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return &u, nil
}
