package memory

import (
	"context"
	"sync"
	"time"

	"notevault-be/internal/entity"
	"notevault-be/internal/repository/contract"
	"notevault-be/internal/repository/specification"

	"github.com/google/uuid"
)

// UserRepository is an in-memory twin of the GORM implementation, used by
// service and end-to-end tests. It interprets the specification types the
// services actually issue instead of building SQL.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users: make(map[uuid.UUID]*entity.User),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	clone := *user
	r.users[user.Id] = &clone
	return nil
}

func (r *UserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if matchUser(u, specs) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if matchUser(u, specs) {
			count++
		}
	}
	return count, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.UsernameOrEmail:
			if u.Username != s.Username && u.Email != s.Email {
				return false
			}
		}
	}
	return true
}

var _ contract.UserRepository = (*UserRepository)(nil)
