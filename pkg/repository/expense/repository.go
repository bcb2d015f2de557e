package expense

import (
	"context"

	"github.com/amirasaad/farmledger/pkg/domain/expense"
	"github.com/amirasaad/farmledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for expense data access operations.
type Repository interface {
	// Create inserts an expense. The caller has run Prepare.
	Create(ctx context.Context, e *expense.Expense) error

	// Get retrieves an expense owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*expense.Expense, error)

	// List returns one page of the user's expenses, newest first.
	List(ctx context.Context, userID uuid.UUID, filter dto.ExpenseFilter, page dto.PageQuery) ([]*expense.Expense, int64, error)

	// Update saves every mutable field of e. The caller has run Prepare.
	Update(ctx context.Context, e *expense.Expense) error

	// Delete removes an expense owned by userID. A missing row yields domain.ErrNotFound.
	Delete(ctx context.Context, userID, id uuid.UUID) error

	// DeleteByCrop removes every expense of a crop and reports how many went.
	DeleteByCrop(ctx context.Context, userID, cropID uuid.UUID) (int64, error)

	// SumByCrop totals the amount of the user's expenses per crop. Crops
	// without expenses are absent from the result.
	SumByCrop(ctx context.Context, userID uuid.UUID, cropIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}
