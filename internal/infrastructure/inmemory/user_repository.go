package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/igorsily/users-api/internal/domain/entity"
	"github.com/igorsily/users-api/internal/domain/repository"
)

// UserRepository is a map-backed implementation of the repository contract.
// It enforces the same unique constraints as the Postgres schema so callers
// observe identical failure modes.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]entity.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]entity.User)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return &repository.UniqueViolationError{Constraint: "users_email_key", Err: errors.New("duplicate key value")}
		}
		if existing.Username == u.Username {
			return &repository.UniqueViolationError{Constraint: "users_username_key", Err: errors.New("duplicate key value")}
		}
	}

	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.IsActive = true
	u.EmailVerified = false
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		cp := u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields repository.UpdateUserFields) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	if fields.FirstName != nil {
		u.FirstName = fields.FirstName
	}
	if fields.LastName != nil {
		u.LastName = fields.LastName
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	cp := u
	return &cp, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *UserRepository) FindAll(ctx context.Context, limit, offset int) ([]entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]entity.User, 0, len(r.users))
	for _, u := range r.users {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return []entity.User{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
