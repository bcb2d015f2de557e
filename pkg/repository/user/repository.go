package user

import (
	"context"

	"github.com/amirasaad/farmledger/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a new user. A phone that is already registered yields
	// domain.ErrAlreadyExists.
	Create(ctx context.Context, u *user.User) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByPhone retrieves a user by phone number.
	GetByPhone(ctx context.Context, phone string) (*user.User, error)

	// Update saves every mutable field of u.
	Update(ctx context.Context, u *user.User) error
}
