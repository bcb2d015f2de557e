package profile

import (
	"context"

	"github.com/amirasaad/farmledger/pkg/domain/profile"
	"github.com/google/uuid"
)

// Repository defines the interface for farmer profile data access operations.
type Repository interface {
	// Create inserts a profile. A second profile for the same user yields
	// domain.ErrAlreadyExists.
	Create(ctx context.Context, p *profile.FarmerProfile) error

	// GetByUser retrieves the profile owned by userID.
	GetByUser(ctx context.Context, userID uuid.UUID) (*profile.FarmerProfile, error)

	// ExistsByUser reports whether userID already has a profile.
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)

	// Update saves every mutable field of p.
	Update(ctx context.Context, p *profile.FarmerProfile) error
}
