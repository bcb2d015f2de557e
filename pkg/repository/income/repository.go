package income

import (
	"context"

	"github.com/amirasaad/farmledger/pkg/domain/income"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for income data access operations.
type Repository interface {
	// Create inserts an income. The caller has run Prepare.
	Create(ctx context.Context, i *income.Income) error

	// Get retrieves an income owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*income.Income, error)

	// List returns one page of the user's incomes, latest date first.
	List(ctx context.Context, userID uuid.UUID, filter dto.IncomeFilter, page dto.PageQuery) ([]*income.Income, int64, error)

	// Update saves every mutable field of i. The caller has run Prepare.
	Update(ctx context.Context, i *income.Income) error

	// Delete removes an income owned by userID. A missing row yields domain.ErrNotFound.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteByCrop removes every income linked to a crop and reports how many went.
	DeleteByCrop(ctx context.Context, userID, cropID uuid.UUID) (int64, error)

	// SumByCrop totals the amount of the user's incomes per crop.
	SumByCrop(ctx context.Context, userID uuid.UUID, cropIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)

	// SummaryByCategory totals the user's incomes per category, largest first.
	// A nil year covers every year.
	SummaryByCategory(ctx context.Context, userID uuid.UUID, year *int) ([]dto.CategoryTotal, error)
}
