package repository

import (
	"context"

	"github.com/oksasatya/timbr/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// CreateAccount atomically inserts the user and the profile variant
	// matching u.Role. Buyers also get an empty preference row.
	// Returns ErrConflict when the email is taken.
	CreateAccount(ctx context.Context, u *entity.User) (entity.Profile, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
