package repository

import (
	"context"
	"sync"
	"time"

	"backoffice-data/internal/domain"
)

// MemoryUsersRepository 内存账号Repository（DB 未就绪时的回退/联测实现）
type MemoryUsersRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  map[string]*domain.User // username -> user
}

var _ UsersRepository = (*MemoryUsersRepository)(nil)

func NewMemoryUsersRepository() *MemoryUsersRepository {
	return &MemoryUsersRepository{
		nextID: 1,
		users:  map[string]*domain.User{},
	}
}

func (r *MemoryUsersRepository) CreateUser(_ context.Context, username, passwordHash string, role domain.UserRole) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; ok {
		return 0, domain.NewConflict("username already exists")
	}

	u := &domain.User{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedOn:    time.Now(),
	}
	r.nextID++
	r.users[username] = u
	return u.ID, nil
}

func (r *MemoryUsersRepository) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.NewNotFound("user not found")
	}
	cp := *u
	return &cp, nil
}
