package repository

import (
	"context"

	"github.com/igorsily/users-api/internal/domain/entity"
)

// UpdateUserFields carries the partial profile update. Nil means "leave the
// column untouched". Email, username and the password hash are deliberately
// absent: the update path never changes them.
type UpdateUserFields struct {
	FirstName *string
	LastName  *string
}

// UserRepository is the persistence boundary for the User entity. Lookups
// return (nil, nil) when no row matches; "not found" is a normal outcome
// here, not an error. No business validation happens in this layer.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	// Update merges the provided fields and refreshes updated_at. Returns
	// (nil, nil) when no row matched.
	Update(ctx context.Context, id string, fields UpdateUserFields) (*entity.User, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// FindAll lists a page of users. No ordering is guaranteed beyond the
	// storage default.
	FindAll(ctx context.Context, limit, offset int) ([]entity.User, error)
}
