package crop

import (
	"context"

	"github.com/amirasaad/farmledger/pkg/domain/crop"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines the interface for crop data access operations. Every
// read and write is scoped to the owning user.
type Repository interface {
	// Create inserts a crop. A duplicate (user, name, year, batch) yields
	// domain.ErrAlreadyExists.
	Create(ctx context.Context, c *crop.Crop) error

	// Get retrieves a crop owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*crop.Crop, error)

	// List returns one page of the user's crops, newest first.
	List(ctx context.Context, userID uuid.UUID, filter dto.CropFilter, page dto.PageQuery) ([]*crop.Crop, int64, error)

	// ListByUserYear returns every crop the user registered for year.
	ListByUserYear(ctx context.Context, userID uuid.UUID, year int) ([]*crop.Crop, error)

	// Years lists the distinct crop years of the user, most recent first.
	Years(ctx context.Context, userID uuid.UUID) ([]int, error)

	// Exists reports whether the user owns a crop with the given id.
	Exists(ctx context.Context, userID, id uuid.UUID) (bool, error)

	// Update saves every mutable field of c.
	Update(ctx context.Context, c *crop.Crop) error

	// Delete removes a crop owned by userID. A missing row yields domain.ErrNotFound.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
